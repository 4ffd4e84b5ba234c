package analyzers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeELBv2 struct {
	loadBalancers []types.LoadBalancer
}

func (f *fakeELBv2) DescribeLoadBalancers(
	_ context.Context,
	_ *elbv2.DescribeLoadBalancersInput,
	_ ...func(*elbv2.Options),
) (*elbv2.DescribeLoadBalancersOutput, error) {
	return &elbv2.DescribeLoadBalancersOutput{LoadBalancers: f.loadBalancers}, nil
}

type fakeClassicELB struct {
	descriptions []elbtypes.LoadBalancerDescription
}

func (f *fakeClassicELB) DescribeLoadBalancers(
	_ context.Context,
	_ *elb.DescribeLoadBalancersInput,
	_ ...func(*elb.Options),
) (*elb.DescribeLoadBalancersOutput, error) {
	return &elb.DescribeLoadBalancersOutput{LoadBalancerDescriptions: f.descriptions}, nil
}

func TestLoadBalancerCollectsBothGenerations(t *testing.T) {
	analyzer := &loadBalancerAnalyzer{
		client: &fakeELBv2{
			loadBalancers: []types.LoadBalancer{
				{
					LoadBalancerName: aws.String("api-alb"),
					Type:             types.LoadBalancerTypeEnumApplication,
					Scheme:           types.LoadBalancerSchemeEnumInternetFacing,
					State:            &types.LoadBalancerState{Code: types.LoadBalancerStateEnumActive},
				},
			},
		},
		classicClient: &fakeClassicELB{
			descriptions: []elbtypes.LoadBalancerDescription{
				{
					LoadBalancerName: aws.String("legacy-elb"),
					Scheme:           aws.String("internal"),
				},
			},
		},
	}

	records, err := analyzer.Collect(context.Background(), "us-east-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "api-alb", records[0].ID)
	assert.Equal(t, "application", records[0].Attributes["type"])
	assert.Equal(t, domain.StateAvailable, records[0].State)

	assert.Equal(t, "legacy-elb", records[1].ID)
	assert.Equal(t, "classic", records[1].Attributes["type"])
	assert.Equal(t, "internal", records[1].Attributes["scheme"])
	assert.Equal(t, domain.StateAvailable, records[1].State)
}
