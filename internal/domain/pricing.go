package domain

// DemandSource records how a node's resource figures were derived
type DemandSource string

const (
	DemandExplicit   DemandSource = "explicit"
	DemandComponents DemandSource = "components"
	DemandDefault    DemandSource = "default"
)

// NodeDemand is the estimated footprint of a single node. CPU and MemoryGB
// include the containerization overhead on top of the base figures.
type NodeDemand struct {
	Name         string       `json:"name"`
	Kind         string       `json:"kind"`
	CPU          int          `json:"cpu_cores"`
	MemoryGB     int          `json:"memory_gb"`
	BaseCPU      int          `json:"base_cpu_cores"`
	BaseMemoryGB int          `json:"base_memory_gb"`
	Source       DemandSource `json:"source"`
}

// ResourceDemand is the aggregate footprint of a whole document
type ResourceDemand struct {
	TotalCPU      int          `json:"total_cpu"`
	TotalMemoryGB int          `json:"total_memory_gb"`
	Nodes         []NodeDemand `json:"nodes"`
}

// Add returns the componentwise sum of two demands
func (d ResourceDemand) Add(other ResourceDemand) ResourceDemand {
	return ResourceDemand{
		TotalCPU:      d.TotalCPU + other.TotalCPU,
		TotalMemoryGB: d.TotalMemoryGB + other.TotalMemoryGB,
		Nodes:         append(append([]NodeDemand(nil), d.Nodes...), other.Nodes...),
	}
}

// MachineOffer is one cloud machine-type entry from the price catalog.
// Spot prices are the discounted (preemptible) variant.
type MachineOffer struct {
	Name           string  `json:"machine_type"`
	CPU            int     `json:"cpu_cores"`
	MemoryGB       int     `json:"memory_gb"`
	HourlyUSD      float64 `json:"hourly_cost"`
	MonthlyUSD     float64 `json:"monthly_cost"`
	SpotHourlyUSD  float64 `json:"spot_hourly_cost"`
	SpotMonthlyUSD float64 `json:"spot_monthly_cost"`
	Custom         bool    `json:"is_custom,omitempty"`
}

// Fits reports whether the offer covers the demand in both dimensions
func (o MachineOffer) Fits(d ResourceDemand) bool {
	return o.CPU >= d.TotalCPU && o.MemoryGB >= d.TotalMemoryGB
}

// PlanPolicy selects the deployment variant
type PlanPolicy struct {
	// HighAvailability duplicates the selected offer for redundancy,
	// doubling cost without adding usable capacity
	HighAvailability bool `json:"high_availability"`
	// Discounted projects costs at spot (preemptible) prices without
	// changing which offer is matched
	Discounted bool `json:"discounted"`
}

// Plan variant labels used in comparisons
const (
	PlanOnDemandStandard = "on_demand_standard"
	PlanSpotStandard     = "spot_standard"
	PlanHighAvailability = "high_availability"
)

// DeploymentPlan is a priced placement of a demand onto a machine offer
type DeploymentPlan struct {
	Variant            string       `json:"variant"`
	Offer              MachineOffer `json:"offer"`
	Count              int          `json:"count"`
	Policy             PlanPolicy   `json:"policy"`
	Region             string       `json:"region"`
	HourlyUSD          float64      `json:"total_hourly_cost"`
	MonthlyUSD         float64      `json:"total_monthly_cost"`
	OnDemandMonthlyUSD float64      `json:"on_demand_monthly_cost"`
	SpotMonthlyUSD     float64      `json:"spot_monthly_cost"`
	Notes              []string     `json:"optimization_notes,omitempty"`
}
