package analyzers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type DescribeClustersAPI interface {
	DescribeClusters(
		ctx context.Context,
		params *redshift.DescribeClustersInput,
		optFns ...func(*redshift.Options),
	) (*redshift.DescribeClustersOutput, error)
}

type warehouseAnalyzer struct {
	client DescribeClustersAPI
}

func NewWarehouse(cfg aws.Config) *warehouseAnalyzer {
	return &warehouseAnalyzer{client: redshift.NewFromConfig(cfg)}
}

func (a *warehouseAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryDataWarehouse
}

func (a *warehouseAnalyzer) Global() bool { return false }

func (a *warehouseAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.DescribeClusters(ctx, &redshift.DescribeClustersInput{},
		func(o *redshift.Options) { o.Region = region })
	if err != nil {
		return nil, fmt.Errorf("failed to describe Redshift clusters in %s: %w", region, err)
	}

	var records []domain.ResourceRecord
	for _, cluster := range resp.Clusters {
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryDataWarehouse,
			ID:       aws.ToString(cluster.ClusterIdentifier),
			State:    mapStatusString(aws.ToString(cluster.ClusterStatus)),
			Attributes: map[string]string{
				"node_type":  aws.ToString(cluster.NodeType),
				"node_count": strconv.Itoa(int(aws.ToInt32(cluster.NumberOfNodes))),
			},
		})
	}
	return records, nil
}
