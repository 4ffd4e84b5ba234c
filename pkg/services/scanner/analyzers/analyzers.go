// Package analyzers holds one inventory collector per service category.
// Each analyzer wraps a single SDK client built from the run's shared AWS
// config and routes individual calls to the requested region.
package analyzers

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/cost-reporter/pkg/services/scanner"
)

// Default returns the full analyzer set, one per supported category.
func Default(cfg aws.Config) []scanner.Analyzer {
	return []scanner.Analyzer{
		NewCompute(cfg),
		NewStorage(cfg),
		NewDatabase(cfg),
		NewCache(cfg),
		NewWarehouse(cfg),
		NewLoadBalancer(cfg),
		NewServerless(cfg),
		NewNetwork(cfg),
		NewCDN(cfg),
		NewDNS(cfg),
	}
}
