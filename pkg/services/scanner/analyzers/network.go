package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type NetworkAPI interface {
	DescribeNatGateways(
		ctx context.Context,
		params *ec2.DescribeNatGatewaysInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeNatGatewaysOutput, error)
	DescribeAddresses(
		ctx context.Context,
		params *ec2.DescribeAddressesInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeAddressesOutput, error)
	DescribeVpcEndpoints(
		ctx context.Context,
		params *ec2.DescribeVpcEndpointsInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeVpcEndpointsOutput, error)
}

// networkAnalyzer lists the VPC resources that bill by the hour whether or
// not traffic flows: NAT gateways, Elastic IPs and VPC endpoints.
type networkAnalyzer struct {
	client NetworkAPI
}

func NewNetwork(cfg aws.Config) *networkAnalyzer {
	return &networkAnalyzer{client: ec2.NewFromConfig(cfg)}
}

func (a *networkAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryNetwork
}

func (a *networkAnalyzer) Global() bool { return false }

func (a *networkAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	var records []domain.ResourceRecord

	natResp, err := a.client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{}, withRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to describe NAT gateways in %s: %w", region, err)
	}
	for _, nat := range natResp.NatGateways {
		// Deleted and failed gateways stop billing; skip them.
		if nat.State != types.NatGatewayStateAvailable && nat.State != types.NatGatewayStatePending {
			continue
		}
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryNetwork,
			ID:       aws.ToString(nat.NatGatewayId),
			State:    mapNatState(nat.State),
			Attributes: map[string]string{
				"resource_type": "nat-gateway",
				"subnet_id":     aws.ToString(nat.SubnetId),
			},
		})
	}

	eipResp, err := a.client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{}, withRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to describe Elastic IPs in %s: %w", region, err)
	}
	for _, eip := range eipResp.Addresses {
		id := aws.ToString(eip.AllocationId)
		if id == "" {
			id = aws.ToString(eip.PublicIp)
		}

		state := domain.StateAvailable
		attrs := map[string]string{
			"resource_type": "elastic-ip",
			"public_ip":     aws.ToString(eip.PublicIp),
		}
		if eip.AssociationId != nil {
			state = domain.StateRunning
			attrs["instance_id"] = aws.ToString(eip.InstanceId)
		}

		records = append(records, domain.ResourceRecord{
			Region:     region,
			Category:   domain.CategoryNetwork,
			ID:         id,
			State:      state,
			Attributes: attrs,
		})
	}

	endpointResp, err := a.client.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{}, withRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPC endpoints in %s: %w", region, err)
	}
	for _, endpoint := range endpointResp.VpcEndpoints {
		switch endpoint.State {
		case types.StateDeleting, types.StateDeleted, types.StateFailed,
			types.StateRejected, types.StateExpired:
			continue
		}
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryNetwork,
			ID:       aws.ToString(endpoint.VpcEndpointId),
			State:    mapVpcEndpointState(endpoint.State),
			Attributes: map[string]string{
				"resource_type": "vpc-endpoint",
				"service_name":  aws.ToString(endpoint.ServiceName),
				"vpc_id":        aws.ToString(endpoint.VpcId),
			},
		})
	}

	return records, nil
}

func mapNatState(state types.NatGatewayState) domain.ResourceState {
	if state == types.NatGatewayStateAvailable {
		return domain.StateAvailable
	}
	return domain.StateOther
}

func mapVpcEndpointState(state types.State) domain.ResourceState {
	if state == types.StateAvailable {
		return domain.StateAvailable
	}
	return domain.StateOther
}
