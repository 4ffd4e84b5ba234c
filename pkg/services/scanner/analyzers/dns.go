package analyzers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type ListHostedZonesAPI interface {
	ListHostedZones(
		ctx context.Context,
		params *route53.ListHostedZonesInput,
		optFns ...func(*route53.Options),
	) (*route53.ListHostedZonesOutput, error)
}

// dnsAnalyzer lists Route53 hosted zones. Route53 is a global service; the
// region argument is ignored.
type dnsAnalyzer struct {
	client ListHostedZonesAPI
}

func NewDNS(cfg aws.Config) *dnsAnalyzer {
	return &dnsAnalyzer{client: route53.NewFromConfig(cfg)}
}

func (a *dnsAnalyzer) Category() domain.ServiceCategory {
	return domain.CategoryDNS
}

func (a *dnsAnalyzer) Global() bool { return true }

func (a *dnsAnalyzer) Collect(ctx context.Context, _ string) ([]domain.ResourceRecord, error) {
	resp, err := a.client.ListHostedZones(ctx, &route53.ListHostedZonesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Route53 hosted zones: %w", err)
	}

	var records []domain.ResourceRecord
	for _, zone := range resp.HostedZones {
		records = append(records, domain.ResourceRecord{
			Region:   domain.GlobalRegion,
			Category: domain.CategoryDNS,
			// Zone IDs arrive as "/hostedzone/Z123..."; keep the bare ID.
			ID:    strings.TrimPrefix(aws.ToString(zone.Id), "/hostedzone/"),
			State: domain.StateAvailable,
			Attributes: map[string]string{
				"name":         aws.ToString(zone.Name),
				"record_count": strconv.FormatInt(aws.ToInt64(zone.ResourceRecordSetCount), 10),
			},
		})
	}
	return records, nil
}
