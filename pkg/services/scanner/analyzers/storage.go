package analyzers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type DescribeVolumesAPI interface {
	DescribeVolumes(
		ctx context.Context,
		params *ec2.DescribeVolumesInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeVolumesOutput, error)
}

// storageAnalyzer lists EBS volumes, attached or not.
type storageAnalyzer struct {
	client DescribeVolumesAPI
}

func NewStorage(cfg aws.Config) *storageAnalyzer {
	return &storageAnalyzer{client: ec2.NewFromConfig(cfg)}
}

func (a *storageAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryStorage
}

func (a *storageAnalyzer) Global() bool { return false }

func (a *storageAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{}, withRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to describe EBS volumes in %s: %w", region, err)
	}

	var records []domain.ResourceRecord
	for _, volume := range resp.Volumes {
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryStorage,
			ID:       aws.ToString(volume.VolumeId),
			State:    mapVolumeState(volume.State),
			Attributes: map[string]string{
				"size_gb":     strconv.Itoa(int(aws.ToInt32(volume.Size))),
				"volume_type": string(volume.VolumeType),
			},
		})
	}
	return records, nil
}

func mapVolumeState(state types.VolumeState) domain.ResourceState {
	switch state {
	case types.VolumeStateAvailable:
		return domain.StateAvailable
	case types.VolumeStateInUse:
		return domain.StateRunning
	default:
		return domain.StateOther
	}
}
