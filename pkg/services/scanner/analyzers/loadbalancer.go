package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type DescribeLoadBalancersAPI interface {
	DescribeLoadBalancers(
		ctx context.Context,
		params *elbv2.DescribeLoadBalancersInput,
		optFns ...func(*elbv2.Options),
	) (*elbv2.DescribeLoadBalancersOutput, error)
}

type DescribeClassicLoadBalancersAPI interface {
	DescribeLoadBalancers(
		ctx context.Context,
		params *elb.DescribeLoadBalancersInput,
		optFns ...func(*elb.Options),
	) (*elb.DescribeLoadBalancersOutput, error)
}

// loadBalancerAnalyzer lists ALBs and NLBs plus classic load balancers,
// which live on a separate API generation.
type loadBalancerAnalyzer struct {
	client        DescribeLoadBalancersAPI
	classicClient DescribeClassicLoadBalancersAPI
}

func NewLoadBalancer(cfg aws.Config) *loadBalancerAnalyzer {
	return &loadBalancerAnalyzer{
		client:        elbv2.NewFromConfig(cfg),
		classicClient: elb.NewFromConfig(cfg),
	}
}

func (a *loadBalancerAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryLoadBalancer
}

func (a *loadBalancerAnalyzer) Global() bool { return false }

func (a *loadBalancerAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{},
		func(o *elbv2.Options) { o.Region = region })
	if err != nil {
		return nil, fmt.Errorf("failed to describe load balancers in %s: %w", region, err)
	}

	var records []domain.ResourceRecord
	for _, lb := range resp.LoadBalancers {
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryLoadBalancer,
			ID:       aws.ToString(lb.LoadBalancerName),
			State:    mapLoadBalancerState(lb.State),
			Attributes: map[string]string{
				"type":   string(lb.Type),
				"scheme": string(lb.Scheme),
			},
		})
	}

	classicResp, err := a.classicClient.DescribeLoadBalancers(ctx, &elb.DescribeLoadBalancersInput{},
		func(o *elb.Options) { o.Region = region })
	if err != nil {
		return nil, fmt.Errorf("failed to describe classic load balancers in %s: %w", region, err)
	}
	for _, lb := range classicResp.LoadBalancerDescriptions {
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryLoadBalancer,
			ID:       aws.ToString(lb.LoadBalancerName),
			// The classic API reports no lifecycle state; simply being
			// provisioned bills.
			State: domain.StateAvailable,
			Attributes: map[string]string{
				"type":   "classic",
				"scheme": aws.ToString(lb.Scheme),
			},
		})
	}

	return records, nil
}

func mapLoadBalancerState(state *types.LoadBalancerState) domain.ResourceState {
	if state == nil {
		return domain.StateOther
	}
	if state.Code == types.LoadBalancerStateEnumActive {
		return domain.StateAvailable
	}
	return domain.StateOther
}
