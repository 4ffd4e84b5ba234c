package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type DescribeDBInstancesAPI interface {
	DescribeDBInstances(
		ctx context.Context,
		params *rds.DescribeDBInstancesInput,
		optFns ...func(*rds.Options),
	) (*rds.DescribeDBInstancesOutput, error)
}

type databaseAnalyzer struct {
	client DescribeDBInstancesAPI
}

func NewDatabase(cfg aws.Config) *databaseAnalyzer {
	return &databaseAnalyzer{client: rds.NewFromConfig(cfg)}
}

func (a *databaseAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryDatabase
}

func (a *databaseAnalyzer) Global() bool { return false }

func (a *databaseAnalyzer) Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{},
		func(o *rds.Options) { o.Region = region })
	if err != nil {
		return nil, fmt.Errorf("failed to describe RDS instances in %s: %w", region, err)
	}

	var records []domain.ResourceRecord
	for _, db := range resp.DBInstances {
		records = append(records, domain.ResourceRecord{
			Region:   region,
			Category: domain.CategoryDatabase,
			ID:       aws.ToString(db.DBInstanceIdentifier),
			State:    mapStatusString(aws.ToString(db.DBInstanceStatus)),
			Attributes: map[string]string{
				"instance_class": aws.ToString(db.DBInstanceClass),
				"engine":         aws.ToString(db.Engine),
			},
		})
	}
	return records, nil
}

// mapStatusString covers the services that report state as a free-form
// status string (RDS, ElastiCache, Redshift).
func mapStatusString(status string) domain.ResourceState {
	switch status {
	case "available":
		return domain.StateAvailable
	case "stopped":
		return domain.StateStopped
	default:
		return domain.StateOther
	}
}
