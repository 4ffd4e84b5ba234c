package analyzers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type ListFunctionsAPI interface {
	ListFunctions(
		ctx context.Context,
		params *lambda.ListFunctionsInput,
		optFns ...func(*lambda.Options),
	) (*lambda.ListFunctionsOutput, error)
}

type serverlessAnalyzer struct {
	client ListFunctionsAPI
}

func NewServerless(cfg aws.Config) *serverlessAnalyzer {
	return &serverlessAnalyzer{client: lambda.NewFromConfig(cfg)}
}

func (a *serverlessAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryServerless
}

func (a *serverlessAnalyzer) Global() bool { return false }

func (a *serverlessAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.ListFunctions(ctx, &lambda.ListFunctionsInput{},
		func(o *lambda.Options) { o.Region = region })
	if err != nil {
		return nil, fmt.Errorf("failed to list Lambda functions in %s: %w", region, err)
	}

	var records []domain.ResourceRecord
	for _, fn := range resp.Functions {
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryServerless,
			ID:       aws.ToString(fn.FunctionName),
			State:    domain.StateAvailable,
			Attributes: map[string]string{
				"runtime":   string(fn.Runtime),
				"memory_mb": strconv.Itoa(int(aws.ToInt32(fn.MemorySize))),
			},
		})
	}
	return records, nil
}
