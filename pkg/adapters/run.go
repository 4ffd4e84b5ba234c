package adapters

import (
	"github.com/de-tools/cost-reporter/pkg/models/api"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

func MapRunResultDomainToApi(result domain.RunResult) api.RunResult {
	apiResult := api.RunResult{
		Status:      string(result.Status),
		StartedAt:   result.StartedAt,
		ElapsedSecs: result.ElapsedSecs,
		Counts: api.RunCounts{
			RegionsScanned: result.Counts.RegionsScanned,
			ResourcesFound: result.Counts.ResourcesFound,
			CostLineItems:  result.Counts.CostLineItems,
		},
		Summary: result.Summary,
	}

	if result.Err != nil {
		apiResult.Error = &api.RunError{
			Kind:    string(result.Err.Kind),
			Message: result.Err.Err.Error(),
		}
	}

	return apiResult
}
