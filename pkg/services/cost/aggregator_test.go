package cost

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/smithy-go"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCostExplorer struct {
	lastInput       *costexplorer.GetCostAndUsageInput
	lastDetailInput *costexplorer.GetCostAndUsageInput
	output          *costexplorer.GetCostAndUsageOutput
	detailOutput    *costexplorer.GetCostAndUsageOutput
	err             error
	detailErr       error
}

func (f *fakeCostExplorer) GetCostAndUsage(
	_ context.Context,
	params *costexplorer.GetCostAndUsageInput,
	_ ...func(*costexplorer.Options),
) (*costexplorer.GetCostAndUsageOutput, error) {
	// The usage type breakdown is the only two-dimension query.
	if len(params.GroupBy) == 2 {
		f.lastDetailInput = params
		if f.detailErr != nil {
			return nil, f.detailErr
		}
		if f.detailOutput != nil {
			return f.detailOutput, nil
		}
		return &costexplorer.GetCostAndUsageOutput{}, nil
	}

	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func group(service, amount string) types.Group {
	return types.Group{
		Keys: []string{service},
		Metrics: map[string]types.MetricValue{
			"BlendedCost": {
				Amount: aws.String(amount),
				Unit:   aws.String("USD"),
			},
		},
	}
}

func TestAggregate(t *testing.T) {
	client := &fakeCostExplorer{
		output: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []types.ResultByTime{
				{
					Groups: []types.Group{
						group("Amazon Elastic Compute Cloud - Compute", "60.00"),
						group("Amazon Simple Storage Service", "30.00"),
						group("AWS Lambda", "10.00"),
						group("Free Tier Thing", "0.0000000000"),
					},
				},
			},
		},
	}
	aggregator := NewAggregatorWithClient(client)

	now := time.Date(2024, 5, 31, 6, 0, 0, 0, time.UTC)
	summary, err := aggregator.Aggregate(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, summary.LineItems, 3)
	assert.InDelta(t, 100.0, summary.Total, 0.001)
	assert.Equal(t, "USD", summary.Currency)

	// Sorted descending by amount.
	assert.Equal(t, "Amazon Elastic Compute Cloud - Compute", summary.LineItems[0].Service)
	assert.InDelta(t, 60.0, summary.LineItems[0].Percentage, 0.001)

	var percentages float64
	for _, item := range summary.LineItems {
		percentages += item.Percentage
	}
	assert.InDelta(t, 100.0, percentages, 0.1)

	// Trailing 30 days, end-exclusive, anchored to the run start.
	require.NotNil(t, client.lastInput)
	assert.Equal(t, "2024-05-01", aws.ToString(client.lastInput.TimePeriod.Start))
	assert.Equal(t, "2024-05-31", aws.ToString(client.lastInput.TimePeriod.End))
}

func TestAggregateTieBreaksByServiceName(t *testing.T) {
	client := &fakeCostExplorer{
		output: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []types.ResultByTime{
				{
					Groups: []types.Group{
						group("Bravo Service", "5.00"),
						group("Alpha Service", "5.00"),
					},
				},
			},
		},
	}

	summary, err := NewAggregatorWithClient(client).Aggregate(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, summary.LineItems, 2)
	assert.Equal(t, "Alpha Service", summary.LineItems[0].Service)
	assert.Equal(t, "Bravo Service", summary.LineItems[1].Service)
}

func TestAggregateMergesMonthlyBuckets(t *testing.T) {
	client := &fakeCostExplorer{
		output: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []types.ResultByTime{
				{Groups: []types.Group{group("Amazon Simple Storage Service", "4.00")}},
				{Groups: []types.Group{group("Amazon Simple Storage Service", "6.00")}},
			},
		},
	}

	summary, err := NewAggregatorWithClient(client).Aggregate(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, summary.LineItems, 1)
	assert.InDelta(t, 10.0, summary.LineItems[0].Amount, 0.001)
	assert.InDelta(t, 100.0, summary.LineItems[0].Percentage, 0.001)
}

func TestAggregateEmptyWindow(t *testing.T) {
	client := &fakeCostExplorer{output: &costexplorer.GetCostAndUsageOutput{}}

	summary, err := NewAggregatorWithClient(client).Aggregate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, summary.LineItems)
	assert.Zero(t, summary.Total)
}

func usageGroup(service, usageType, amount, quantity string) types.Group {
	return types.Group{
		Keys: []string{service, usageType},
		Metrics: map[string]types.MetricValue{
			"BlendedCost": {
				Amount: aws.String(amount),
				Unit:   aws.String("USD"),
			},
			"UsageQuantity": {
				Amount: aws.String(quantity),
				Unit:   aws.String("N/A"),
			},
		},
	}
}

func TestAggregateAttachesUsageDetails(t *testing.T) {
	client := &fakeCostExplorer{
		output: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []types.ResultByTime{
				{Groups: []types.Group{
					group("Amazon Elastic Compute Cloud - Compute", "100.00"),
				}},
			},
		},
		detailOutput: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []types.ResultByTime{
				{Groups: []types.Group{
					usageGroup("Amazon Elastic Compute Cloud - Compute", "APS2-BoxUsage:t3.micro", "70.00", "720"),
					usageGroup("Amazon Elastic Compute Cloud - Compute", "EBS:VolumeUsage.gp3", "30.00", "50"),
					usageGroup("Amazon Elastic Compute Cloud - Compute", "ZeroCost", "0.00", "10"),
				}},
			},
		},
	}

	summary, err := NewAggregatorWithClient(client).Aggregate(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, summary.LineItems, 1)

	details := summary.LineItems[0].Details
	require.Len(t, details, 2)

	// Sorted descending by amount, with readable names, units and rates.
	assert.Equal(t, "EC2 Instance - t3.micro", details[0].Name)
	assert.Equal(t, "APS2-BoxUsage:t3.micro", details[0].RawType)
	assert.Equal(t, "Hrs", details[0].Unit)
	assert.InDelta(t, 70.0/720.0, details[0].Rate, 0.0001)
	assert.InDelta(t, 70.0, details[0].Percentage, 0.001)

	assert.Equal(t, "EBS Volume Storage", details[1].Name)
	assert.Equal(t, "GB-Mo", details[1].Unit)
	assert.InDelta(t, 30.0, details[1].Percentage, 0.001)

	// The breakdown query carries the extra dimension and metric.
	require.NotNil(t, client.lastDetailInput)
	assert.Equal(t, "USAGE_TYPE", aws.ToString(client.lastDetailInput.GroupBy[1].Key))
	assert.Contains(t, client.lastDetailInput.Metrics, "UsageQuantity")
}

func TestAggregateDetailQueryFailureIsFatalBilling(t *testing.T) {
	client := &fakeCostExplorer{
		output: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []types.ResultByTime{
				{Groups: []types.Group{group("AWS Lambda", "10.00")}},
			},
		},
		detailErr: &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"},
	}

	_, err := NewAggregatorWithClient(client).Aggregate(context.Background(), time.Now())
	require.Error(t, err)

	var runErr *domain.RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, domain.ErrKindBilling, runErr.Kind)
}

func TestAggregateQueryFailureIsFatalBilling(t *testing.T) {
	client := &fakeCostExplorer{
		err: &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not allowed"},
	}

	_, err := NewAggregatorWithClient(client).Aggregate(context.Background(), time.Now())
	require.Error(t, err)

	var runErr *domain.RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, domain.ErrKindBilling, runErr.Kind)
}
