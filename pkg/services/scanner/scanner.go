package scanner

import (
	"context"
	"sort"
	"sync"

	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Analyzer queries one service category's listing API in one region and
// maps the results into normalized resource records. Implementations must
// be safe for concurrent use across regions.
type Analyzer interface {
	Category() domain.ServiceCategory
	// Global analyzers are queried once per run under domain.GlobalRegion
	// instead of once per region.
	Global() bool
	Collect(ctx context.Context, region string) ([]domain.ResourceRecord, error)
}

type Scanner struct {
	analyzers []Analyzer
}

func New(analyzers ...Analyzer) *Scanner {
	return &Scanner{analyzers: analyzers}
}

type pair struct {
	region   string
	analyzer Analyzer
}

// Scan fans out one goroutine per (region, category) pair, each writing to
// its own slot of a preallocated result table, and joins on all of them
// before merging. A failed pair is logged and contributes zero resources;
// it never aborts the scan.
func (s *Scanner) Scan(ctx context.Context, regions []string) map[string][]domain.ResourceRecord {
	logger := zerolog.Ctx(ctx)

	var pairs []pair
	for _, analyzer := range s.analyzers {
		if analyzer.Global() {
			pairs = append(pairs, pair{region: domain.GlobalRegion, analyzer: analyzer})
			continue
		}
		for _, region := range regions {
			pairs = append(pairs, pair{region: region, analyzer: analyzer})
		}
	}

	results := make([][]domain.ResourceRecord, len(pairs))

	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		go func(slot int, p pair) {
			defer wg.Done()
			records, err := p.analyzer.Collect(ctx, p.region)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("region", p.region).
					Str("category", string(p.analyzer.Category())).
					Msg("scan pair failed, counting zero resources")
				return
			}
			results[slot] = records
		}(i, p)
	}
	wg.Wait()

	merged := make(map[string][]domain.ResourceRecord)
	for _, records := range results {
		for _, record := range records {
			merged[record.Region] = append(merged[record.Region], record)
		}
	}

	order := categoryOrder()
	for region := range merged {
		records := merged[region]
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Category != records[j].Category {
				return order[records[i].Category] < order[records[j].Category]
			}
			return records[i].ID < records[j].ID
		})
		merged[region] = records
	}

	return merged
}

func categoryOrder() map[domain.ServiceCategory]int {
	order := make(map[domain.ServiceCategory]int)
	for i, category := range domain.Categories() {
		order[category] = i
	}
	return order
}
