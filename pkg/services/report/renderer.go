// Package report turns one run's scan and billing output into the report
// model and its HTML and plain-text renderings. Rendering is pure: same
// input, byte-identical output.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/samber/lo"
)

const windowDays = 30

// Line-level bands are fixed; only the grand-total bands are operator
// tunable. Usage-type rows band on their own, tighter scale.
const (
	lineThresholdMedium = 5.0
	lineThresholdHigh   = 50.0

	usageThresholdMedium = 2.0
	usageThresholdHigh   = 20.0

	// Usage rows below this disappear from the report; they are noise at
	// report granularity.
	usageDisplayFloor = 0.01
)

type Thresholds struct {
	Medium float64
	High   float64
}

type Input struct {
	GeneratedAt time.Time
	Summary     domain.CostSummary
	Resources   map[string][]domain.ResourceRecord
}

type Renderer struct {
	thresholds Thresholds
}

func NewRenderer(thresholds Thresholds) *Renderer {
	return &Renderer{thresholds: thresholds}
}

// Render assembles the report model and both textual bodies. It performs
// no I/O; an error here means malformed templates, which is a programming
// defect caught by tests, not a runtime condition.
func (r *Renderer) Render(input Input) (domain.Report, domain.Rendered, error) {
	generatedAt := input.GeneratedAt.UTC()

	rpt := domain.Report{
		GeneratedAt: generatedAt,
		WindowStart: generatedAt.AddDate(0, 0, -windowDays),
		WindowEnd:   generatedAt,
		Total:       input.Summary.Total,
		Currency:    input.Summary.Currency,
		Band:        r.classifyTotal(input.Summary.Total),
		LineItems:   input.Summary.LineItems,
		Regions:     regionOrder(input.Resources),
		Resources:   input.Resources,
	}

	view := buildView(rpt)

	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, view); err != nil {
		return domain.Report{}, domain.Rendered{}, fmt.Errorf("failed to render HTML body: %w", err)
	}

	var text bytes.Buffer
	if err := textTemplate.Execute(&text, view); err != nil {
		return domain.Report{}, domain.Rendered{}, fmt.Errorf("failed to render text body: %w", err)
	}

	rendered := domain.Rendered{
		Subject: fmt.Sprintf("AWS Cost Report - %s", generatedAt.Format("2006-01-02 15:04 UTC")),
		HTML:    html.String(),
		Text:    text.String(),
	}
	return rpt, rendered, nil
}

func (r *Renderer) classifyTotal(total float64) domain.SeverityBand {
	switch {
	case total > r.thresholds.High:
		return domain.BandHigh
	case total > r.thresholds.Medium:
		return domain.BandMedium
	default:
		return domain.BandLow
	}
}

func classifyLine(amount float64) domain.SeverityBand {
	switch {
	case amount > lineThresholdHigh:
		return domain.BandHigh
	case amount > lineThresholdMedium:
		return domain.BandMedium
	default:
		return domain.BandLow
	}
}

func classifyUsage(amount float64) domain.SeverityBand {
	switch {
	case amount > usageThresholdHigh:
		return domain.BandHigh
	case amount > usageThresholdMedium:
		return domain.BandMedium
	default:
		return domain.BandLow
	}
}

// regionOrder sorts region names ascending with the global pseudo-region
// last, so the report reads regional inventory first.
func regionOrder(resources map[string][]domain.ResourceRecord) []string {
	regions := lo.Keys(resources)
	sort.Slice(regions, func(i, j int) bool {
		if (regions[i] == domain.GlobalRegion) != (regions[j] == domain.GlobalRegion) {
			return regions[j] == domain.GlobalRegion
		}
		return regions[i] < regions[j]
	})
	return regions
}

type usageView struct {
	Name       string
	Amount     string
	UsageInfo  string
	Percentage string
	BandClass  string
}

type lineView struct {
	Service    string
	Amount     string
	Percentage string
	BandClass  string
	Details    []usageView
}

type resourceView struct {
	ID      string
	State   string
	Details string
}

type categoryView struct {
	Name      string
	Count     int
	Resources []resourceView
}

type regionView struct {
	Name       string
	Count      int
	Categories []categoryView
}

type reportView struct {
	GeneratedAt   string
	WindowStart   string
	WindowEnd     string
	Total         string
	Currency      string
	BandClass     string
	Lines         []lineView
	Regions       []regionView
	RegionCount   int
	ResourceCount int
	LineItemCount int
	UsageCount    int
}

func buildView(rpt domain.Report) reportView {
	view := reportView{
		GeneratedAt:   rpt.GeneratedAt.Format("2006-01-02 15:04:05 UTC"),
		WindowStart:   rpt.WindowStart.Format("2006-01-02"),
		WindowEnd:     rpt.WindowEnd.Format("2006-01-02"),
		Total:         fmt.Sprintf("%.2f", rpt.Total),
		Currency:      rpt.Currency,
		BandClass:     bandClass(rpt.Band),
		RegionCount:   len(rpt.Regions),
		LineItemCount: len(rpt.LineItems),
	}

	for _, item := range rpt.LineItems {
		lv := lineView{
			Service:    item.Service,
			Amount:     fmt.Sprintf("%.2f", item.Amount),
			Percentage: fmt.Sprintf("%.1f%%", item.Percentage),
			BandClass:  bandClass(classifyLine(item.Amount)),
		}
		for _, detail := range item.Details {
			if detail.Amount <= usageDisplayFloor {
				continue
			}
			lv.Details = append(lv.Details, usageView{
				Name:       detail.Name,
				Amount:     fmt.Sprintf("%.2f", detail.Amount),
				UsageInfo:  formatUsageInfo(detail),
				Percentage: fmt.Sprintf("%.1f%% of service", detail.Percentage),
				BandClass:  bandClass(classifyUsage(detail.Amount)),
			})
		}
		view.UsageCount += len(lv.Details)
		view.Lines = append(view.Lines, lv)
	}

	for _, region := range rpt.Regions {
		records := rpt.Resources[region]
		view.ResourceCount += len(records)

		grouped := lo.GroupBy(records, func(r domain.ResourceRecord) domain.ServiceCategory {
			return r.Category
		})

		rv := regionView{Name: region, Count: len(records)}
		for _, category := range domain.Categories() {
			categoryRecords, ok := grouped[category]
			if !ok {
				continue
			}
			cv := categoryView{Name: string(category), Count: len(categoryRecords)}
			for _, record := range categoryRecords {
				cv.Resources = append(cv.Resources, resourceView{
					ID:      record.ID,
					State:   string(record.State),
					Details: formatAttributes(record.Attributes),
				})
			}
			rv.Categories = append(rv.Categories, cv)
		}
		view.Regions = append(view.Regions, rv)
	}

	return view
}

func bandClass(band domain.SeverityBand) string {
	return "cost-" + string(band)
}

// formatUsageInfo renders the rate-times-quantity string for a usage row,
// or nothing when Cost Explorer reported no usable quantity.
func formatUsageInfo(detail domain.UsageDetail) string {
	if detail.Quantity <= 0 || detail.Rate <= 0 {
		return ""
	}

	var quantity string
	switch {
	case detail.Quantity >= 1000:
		quantity = fmt.Sprintf("%.0f", detail.Quantity)
	case detail.Quantity >= 1:
		quantity = fmt.Sprintf("%.1f", detail.Quantity)
	default:
		quantity = fmt.Sprintf("%.3f", detail.Quantity)
	}

	return fmt.Sprintf("%.3f per %s x %s %s", detail.Rate, detail.Unit, quantity, detail.Unit)
}

// formatAttributes renders the attribute map in sorted key order so the
// output is stable across runs.
func formatAttributes(attrs map[string]string) string {
	keys := lo.Keys(attrs)
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, attrs[key]))
	}
	return strings.Join(parts, ", ")
}
