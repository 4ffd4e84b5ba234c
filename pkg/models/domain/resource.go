package domain

// ServiceCategory is the closed set of inventory categories the scanner
// knows how to query. Dispatch is by a static table keyed on this type,
// never by reflection.
type ServiceCategory string

const (
	CategoryCompute       ServiceCategory = "compute"
	CategoryStorage       ServiceCategory = "storage"
	CategoryDatabase      ServiceCategory = "database"
	CategoryCache         ServiceCategory = "cache"
	CategoryDataWarehouse ServiceCategory = "data-warehouse"
	CategoryLoadBalancer  ServiceCategory = "load-balancer"
	CategoryServerless    ServiceCategory = "serverless"
	CategoryNetwork       ServiceCategory = "network"
	CategoryCDN           ServiceCategory = "cdn"
	CategoryDNS           ServiceCategory = "dns"
)

// Categories lists every category in report order. Regional categories come
// first, the global ones (cdn, dns) last.
func Categories() []ServiceCategory {
	return []ServiceCategory{
		CategoryCompute,
		CategoryStorage,
		CategoryDatabase,
		CategoryCache,
		CategoryDataWarehouse,
		CategoryLoadBalancer,
		CategoryServerless,
		CategoryNetwork,
		CategoryCDN,
		CategoryDNS,
	}
}

type ResourceState string

const (
	StateRunning   ResourceState = "running"
	StateStopped   ResourceState = "stopped"
	StateAvailable ResourceState = "available"
	StateOther     ResourceState = "other"
)

// GlobalRegion is the pseudo-region assigned to resources that are not
// bound to a single region (CloudFront distributions, Route53 zones).
const GlobalRegion = "global"

// ResourceRecord is one discovered inventory item, normalized across
// service categories. Attributes carry the category-specific details
// (instance type, engine, size) as plain strings.
type ResourceRecord struct {
	Region     string
	Category   ServiceCategory
	ID         string
	State      ResourceState
	Attributes map[string]string
}
