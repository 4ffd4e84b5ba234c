package scanner

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

type DescribeRegionsAPI interface {
	DescribeRegions(
		ctx context.Context,
		params *ec2.DescribeRegionsInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeRegionsOutput, error)
}

// RegionLister enumerates the regions a run fans out over.
type RegionLister interface {
	ListRegions(ctx context.Context) ([]string, error)
}

type ec2RegionLister struct {
	client DescribeRegionsAPI
}

func NewRegionLister(cfg aws.Config) RegionLister {
	return &ec2RegionLister{client: ec2.NewFromConfig(cfg)}
}

func (l *ec2RegionLister) ListRegions(ctx context.Context) ([]string, error) {
	resp, err := l.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	regions := make([]string, 0, len(resp.Regions))
	for _, region := range resp.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	return regions, nil
}
