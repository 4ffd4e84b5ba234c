package domain

import "time"

// SeverityBand classifies a cost amount against the configured thresholds.
// It only influences presentation, never control flow.
type SeverityBand string

const (
	BandLow    SeverityBand = "low"
	BandMedium SeverityBand = "medium"
	BandHigh   SeverityBand = "high"
)

// Report is the assembled run output: the billing window summary plus the
// per-region inventory, in the stable order produced by the scanner.
// It is built once per run and never mutated after rendering.
type Report struct {
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Total       float64
	Currency    string
	Band        SeverityBand
	LineItems   []CostLineItem
	Regions     []string // report order for Resources
	Resources   map[string][]ResourceRecord
}

// Rendered holds both textual representations of a Report. The HTML body
// carries the severity band styling; the plain-text body is band-agnostic.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}
