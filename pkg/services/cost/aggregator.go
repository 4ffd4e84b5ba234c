// Package cost aggregates the trailing billing window from Cost Explorer.
package cost

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/samber/lo"
)

const (
	windowDays      = 30
	defaultCurrency = "USD"
)

type GetCostAndUsageAPI interface {
	GetCostAndUsage(
		ctx context.Context,
		params *costexplorer.GetCostAndUsageInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetCostAndUsageOutput, error)
}

type Aggregator struct {
	client GetCostAndUsageAPI
}

func NewAggregator(cfg aws.Config) *Aggregator {
	return &Aggregator{client: costexplorer.NewFromConfig(cfg)}
}

// NewAggregatorWithClient exists for tests and alternate wiring.
func NewAggregatorWithClient(client GetCostAndUsageAPI) *Aggregator {
	return &Aggregator{client: client}
}

// Aggregate queries the trailing 30-day window ending at now (end date
// exclusive), first grouped by service and then by service and usage type,
// and reduces both into sorted line items with percentages of the grand
// total and a per-usage-type breakdown under each service. An empty window
// is a valid result with a zero total; any query error is fatal for the
// run, since a cost report without cost data is meaningless.
func (a *Aggregator) Aggregate(ctx context.Context, now time.Time) (domain.CostSummary, error) {
	end := now.UTC()
	start := end.AddDate(0, 0, -windowDays)

	result, err := a.client.GetCostAndUsage(ctx, a.buildInput(start, end, false))
	if err != nil {
		return domain.CostSummary{}, domain.NewRunError(
			domain.ErrKindBilling,
			fmt.Errorf("failed to get cost and usage: %w", err),
		)
	}

	summary, err := reduce(result)
	if err != nil {
		return domain.CostSummary{}, err
	}

	detailed, err := a.client.GetCostAndUsage(ctx, a.buildInput(start, end, true))
	if err != nil {
		return domain.CostSummary{}, domain.NewRunError(
			domain.ErrKindBilling,
			fmt.Errorf("failed to get usage type breakdown: %w", err),
		)
	}

	details, err := reduceDetails(detailed)
	if err != nil {
		return domain.CostSummary{}, err
	}
	attachDetails(&summary, details)

	return summary, nil
}

func (a *Aggregator) buildInput(start, end time.Time, byUsageType bool) *costexplorer.GetCostAndUsageInput {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{"BlendedCost"},
		Filter: &types.Expression{
			Not: &types.Expression{
				Dimensions: &types.DimensionValues{
					Key:    types.DimensionRecordType,
					Values: []string{"Credit", "Refund"},
				},
			},
		},
		GroupBy: []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String("SERVICE"),
			},
		},
	}
	if byUsageType {
		input.Metrics = []string{"BlendedCost", "UsageQuantity"}
		input.GroupBy = append(input.GroupBy, types.GroupDefinition{
			Type: types.GroupDefinitionTypeDimension,
			Key:  aws.String("USAGE_TYPE"),
		})
	}
	return input
}

func reduce(result *costexplorer.GetCostAndUsageOutput) (domain.CostSummary, error) {
	amounts := make(map[string]float64)
	currency := defaultCurrency

	for _, resultByTime := range result.ResultsByTime {
		for _, group := range resultByTime.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics["BlendedCost"]
			if !ok {
				continue
			}

			amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				return domain.CostSummary{}, domain.NewRunError(
					domain.ErrKindBilling,
					fmt.Errorf("failed to parse cost amount %q: %w", aws.ToString(metric.Amount), err),
				)
			}
			if amount <= 0 {
				continue
			}
			if unit := aws.ToString(metric.Unit); unit != "" {
				currency = unit
			}
			amounts[group.Keys[0]] += amount
		}
	}

	lineItems := lo.MapToSlice(amounts, func(service string, amount float64) domain.CostLineItem {
		return domain.CostLineItem{
			Service:  service,
			Amount:   amount,
			Currency: currency,
		}
	})
	total := lo.SumBy(lineItems, func(item domain.CostLineItem) float64 { return item.Amount })

	for i := range lineItems {
		if total > 0 {
			lineItems[i].Percentage = lineItems[i].Amount / total * 100
		}
	}

	sort.Slice(lineItems, func(i, j int) bool {
		if lineItems[i].Amount != lineItems[j].Amount {
			return lineItems[i].Amount > lineItems[j].Amount
		}
		return lineItems[i].Service < lineItems[j].Service
	})

	return domain.CostSummary{
		LineItems: lineItems,
		Total:     total,
		Currency:  currency,
	}, nil
}

type usageKey struct {
	service   string
	usageType string
}

func reduceDetails(result *costexplorer.GetCostAndUsageOutput) (map[string][]domain.UsageDetail, error) {
	amounts := make(map[usageKey]float64)
	quantities := make(map[usageKey]float64)

	for _, resultByTime := range result.ResultsByTime {
		for _, group := range resultByTime.Groups {
			if len(group.Keys) < 2 {
				continue
			}
			key := usageKey{service: group.Keys[0], usageType: group.Keys[1]}

			metric, ok := group.Metrics["BlendedCost"]
			if !ok {
				continue
			}
			amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				return nil, domain.NewRunError(
					domain.ErrKindBilling,
					fmt.Errorf("failed to parse cost amount %q: %w", aws.ToString(metric.Amount), err),
				)
			}
			if amount <= 0 {
				continue
			}
			amounts[key] += amount

			if quantity, ok := group.Metrics["UsageQuantity"]; ok {
				parsed, err := strconv.ParseFloat(aws.ToString(quantity.Amount), 64)
				if err == nil {
					quantities[key] += parsed
				}
			}
		}
	}

	details := make(map[string][]domain.UsageDetail)
	for key, amount := range amounts {
		detail := domain.UsageDetail{
			Name:     cleanUsageType(key.usageType, key.service),
			RawType:  key.usageType,
			Amount:   amount,
			Quantity: quantities[key],
			Unit:     usageUnit(key.usageType, key.service),
		}
		if detail.Quantity > 0 {
			detail.Rate = detail.Amount / detail.Quantity
		}
		details[key.service] = append(details[key.service], detail)
	}
	return details, nil
}

// attachDetails hangs each service's usage breakdown off its line item with
// percentages of the service amount, sorted like the line items themselves.
func attachDetails(summary *domain.CostSummary, details map[string][]domain.UsageDetail) {
	for i := range summary.LineItems {
		item := &summary.LineItems[i]
		serviceDetails := details[item.Service]

		for j := range serviceDetails {
			if item.Amount > 0 {
				serviceDetails[j].Percentage = serviceDetails[j].Amount / item.Amount * 100
			}
		}
		sort.Slice(serviceDetails, func(a, b int) bool {
			if serviceDetails[a].Amount != serviceDetails[b].Amount {
				return serviceDetails[a].Amount > serviceDetails[b].Amount
			}
			return serviceDetails[a].Name < serviceDetails[b].Name
		})
		item.Details = serviceDetails
	}
}
