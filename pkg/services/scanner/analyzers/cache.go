package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type DescribeCacheClustersAPI interface {
	DescribeCacheClusters(
		ctx context.Context,
		params *elasticache.DescribeCacheClustersInput,
		optFns ...func(*elasticache.Options),
	) (*elasticache.DescribeCacheClustersOutput, error)
}

type cacheAnalyzer struct {
	client DescribeCacheClustersAPI
}

func NewCache(cfg aws.Config) *cacheAnalyzer {
	return &cacheAnalyzer{client: elasticache.NewFromConfig(cfg)}
}

func (a *cacheAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryCache
}

func (a *cacheAnalyzer) Global() bool { return false }

func (a *cacheAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.DescribeCacheClusters(ctx, &elasticache.DescribeCacheClustersInput{},
		func(o *elasticache.Options) { o.Region = region })
	if err != nil {
		return nil, fmt.Errorf("failed to describe ElastiCache clusters in %s: %w", region, err)
	}

	var records []domain.ResourceRecord
	for _, cluster := range resp.CacheClusters {
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryCache,
			ID:       aws.ToString(cluster.CacheClusterId),
			State:    mapStatusString(aws.ToString(cluster.CacheClusterStatus)),
			Attributes: map[string]string{
				"node_type": aws.ToString(cluster.CacheNodeType),
				"engine":    aws.ToString(cluster.Engine),
			},
		})
	}
	return records, nil
}
