package domain

// UsageDetail is one usage type's share of a service's cost, with the
// billed quantity where Cost Explorer reports one.
type UsageDetail struct {
	Name       string // display name, region prefix stripped
	RawType    string // usage type exactly as billed
	Amount     float64
	Quantity   float64
	Unit       string
	Rate       float64 // Amount / Quantity when the quantity is known
	Percentage float64 // of the owning service's amount
}

// CostLineItem is one service's share of the billing window.
type CostLineItem struct {
	Service    string
	Amount     float64
	Currency   string
	Percentage float64 // of the window's grand total
	Details    []UsageDetail
}

// CostSummary is the aggregated billing window: line items sorted by amount
// descending (ties by service name ascending) plus the grand total.
type CostSummary struct {
	LineItems []CostLineItem
	Total     float64
	Currency  string
}
