package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type DescribeInstancesAPI interface {
	DescribeInstances(
		ctx context.Context,
		params *ec2.DescribeInstancesInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeInstancesOutput, error)
}

// computeAnalyzer lists EC2 instances. Running and stopped instances both
// appear in the report: stopped instances still accrue EBS charges.
type computeAnalyzer struct {
	client DescribeInstancesAPI
}

func NewCompute(cfg aws.Config) *computeAnalyzer {
	return &computeAnalyzer{client: ec2.NewFromConfig(cfg)}
}

func (a *computeAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryCompute
}

func (a *computeAnalyzer) Global() bool { return false }

func (a *computeAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"running", "stopped"},
			},
		},
	}, withRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to describe EC2 instances in %s: %w", region, err)
	}

	var records []domain.ResourceRecord
	for _, reservation := range resp.Reservations {
		for _, instance := range reservation.Instances {
			attrs := map[string]string{
				"instance_type": string(instance.InstanceType),
			}
			if instance.LaunchTime != nil {
				attrs["launch_time"] = instance.LaunchTime.UTC().Format("2006-01-02T15:04:05Z")
			}
			for _, tag := range instance.Tags {
				if aws.ToString(tag.Key) == "Name" {
					attrs["name"] = aws.ToString(tag.Value)
					break
				}
			}

			records = append(records, domain.ResourceRecord{
				Region:     region,
				Category:   domain.CategoryCompute,
				ID:         aws.ToString(instance.InstanceId),
				State:      mapInstanceState(instance.State),
				Attributes: attrs,
			})
		}
	}
	return records, nil
}

func mapInstanceState(state *types.InstanceState) domain.ResourceState {
	if state == nil {
		return domain.StateOther
	}
	switch state.Name {
	case types.InstanceStateNameRunning:
		return domain.StateRunning
	case types.InstanceStateNameStopped:
		return domain.StateStopped
	default:
		return domain.StateOther
	}
}

// withRegion routes a single call to the given region without rebuilding
// the client.
func withRegion(region string) func(*ec2.Options) {
	return func(o *ec2.Options) {
		o.Region = region
	}
}
