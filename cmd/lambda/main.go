package main

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/de-tools/cost-reporter/pkg/adapters"
	"github.com/de-tools/cost-reporter/pkg/models/api"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/de-tools/cost-reporter/pkg/services/job"
	"github.com/rs/zerolog"
)

func handler(ctx context.Context, event job.Event) (api.RunResult, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	result := job.Execute(ctx, event)
	apiResult := adapters.MapRunResultDomainToApi(result)

	if result.Status == domain.RunFailed {
		// A non-nil error is what the scheduler's retry and error-count
		// alarm react to.
		return apiResult, errors.New(result.Err.Error())
	}
	return apiResult, nil
}

func main() {
	lambda.Start(handler)
}
