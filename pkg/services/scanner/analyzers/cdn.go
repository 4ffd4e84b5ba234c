package analyzers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type ListDistributionsAPI interface {
	ListDistributions(
		ctx context.Context,
		params *cloudfront.ListDistributionsInput,
		optFns ...func(*cloudfront.Options),
	) (*cloudfront.ListDistributionsOutput, error)
}

// cdnAnalyzer lists CloudFront distributions. CloudFront is a global
// service; the region argument is ignored.
type cdnAnalyzer struct {
	client ListDistributionsAPI
}

func NewCDN(cfg aws.Config) *cdnAnalyzer {
	return &cdnAnalyzer{client: cloudfront.NewFromConfig(cfg)}
}

func (a *cdnAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryCDN
}

func (a *cdnAnalyzer) Global() bool { return true }

func (a *cdnAnalyzer) Collect(ctx context.Context, _ string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.ListDistributions(ctx, &cloudfront.ListDistributionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list CloudFront distributions: %w", err)
	}

	var records []domain.ResourceRecord
	if resp.DistributionList == nil {
		return records, nil
	}
	for _, dist := range resp.DistributionList.Items {
		state := domain.StateOther
		if aws.ToString(dist.Status) == "Deployed" {
			state = domain.StateAvailable
		}
		records = append(records, domain.ResourceRecord{
			Region:   domain.GlobalRegion,
			Category: domain.CategoryCDN,
			ID:       aws.ToString(dist.Id),
			State:    state,
			Attributes: map[string]string{
				"domain_name": aws.ToString(dist.DomainName),
				"enabled":     strconv.FormatBool(aws.ToBool(dist.Enabled)),
			},
		})
	}
	return records, nil
}
