package pricing

import (
	"sort"

	"github.com/clabops/backend-go/internal/domain"
)

// Optimizer matches resource demand against an immutable price catalog
type Optimizer struct {
	catalog *Catalog
}

// NewOptimizer creates an Optimizer over the given catalog
func NewOptimizer(catalog *Catalog) *Optimizer {
	return &Optimizer{catalog: catalog}
}

// Optimize selects the lowest-cost offer whose CPU and memory both cover the
// demand; ties break by lowest CPU, then lowest memory. The policy never
// changes which offer matches: high availability doubles the count and cost,
// and the discount flag projects spot prices instead of on-demand.
// When no offer fits, a *domain.CapacityError names the unmet dimension.
func (o *Optimizer) Optimize(demand domain.ResourceDemand, policy domain.PlanPolicy) (domain.DeploymentPlan, error) {
	offer, err := o.selectOffer(demand)
	if err != nil {
		return domain.DeploymentPlan{}, err
	}

	count := 1
	variant := domain.PlanOnDemandStandard
	notes := []string{"using standard machine types"}

	if policy.Discounted {
		variant = domain.PlanSpotStandard
		notes = append(notes, "using spot instances for cost savings (may be preempted)")
	}
	if policy.HighAvailability {
		count = 2
		variant = domain.PlanHighAvailability
		notes = append(notes, "duplicating the selected machine for redundancy")
	}

	hourly := offer.HourlyUSD
	monthly := offer.MonthlyUSD
	if policy.Discounted {
		hourly = offer.SpotHourlyUSD
		monthly = offer.SpotMonthlyUSD
	}

	return domain.DeploymentPlan{
		Variant:            variant,
		Offer:              offer,
		Count:              count,
		Policy:             policy,
		Region:             o.catalog.Region(),
		HourlyUSD:          hourly * float64(count),
		MonthlyUSD:         roundCents(monthly * float64(count)),
		OnDemandMonthlyUSD: roundCents(offer.MonthlyUSD * float64(count)),
		SpotMonthlyUSD:     roundCents(offer.SpotMonthlyUSD * float64(count)),
		Notes:              notes,
	}, nil
}

// Compare returns the on-demand standard, spot standard and high-availability
// plans for the demand, sorted by ascending on-demand monthly cost.
func (o *Optimizer) Compare(demand domain.ResourceDemand) ([]domain.DeploymentPlan, error) {
	policies := []domain.PlanPolicy{
		{},
		{Discounted: true},
		{HighAvailability: true},
	}

	plans := make([]domain.DeploymentPlan, 0, len(policies))
	for _, policy := range policies {
		plan, err := o.Optimize(demand, policy)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].OnDemandMonthlyUSD < plans[j].OnDemandMonthlyUSD
	})
	return plans, nil
}

// selectOffer finds the cheapest fitting offer, or explains which dimension
// the catalog cannot cover
func (o *Optimizer) selectOffer(demand domain.ResourceDemand) (domain.MachineOffer, error) {
	var best domain.MachineOffer
	found := false

	for _, offer := range o.catalog.Offers() {
		if !offer.Fits(demand) {
			continue
		}
		if !found || cheaper(offer, best) {
			best = offer
			found = true
		}
	}
	if found {
		return best, nil
	}
	return domain.MachineOffer{}, o.capacityError(demand)
}

func cheaper(a, b domain.MachineOffer) bool {
	if a.MonthlyUSD != b.MonthlyUSD {
		return a.MonthlyUSD < b.MonthlyUSD
	}
	if a.CPU != b.CPU {
		return a.CPU < b.CPU
	}
	return a.MemoryGB < b.MemoryGB
}

// capacityError pinpoints the failing dimension. If some offer covers the
// CPU demand on its own, the shortfall is in memory among those offers;
// otherwise it is in CPU.
func (o *Optimizer) capacityError(demand domain.ResourceDemand) error {
	maxCPU := 0
	maxMemoryCoveringCPU := 0
	for _, offer := range o.catalog.Offers() {
		if offer.CPU > maxCPU {
			maxCPU = offer.CPU
		}
		if offer.CPU >= demand.TotalCPU && offer.MemoryGB > maxMemoryCoveringCPU {
			maxMemoryCoveringCPU = offer.MemoryGB
		}
	}

	if maxCPU < demand.TotalCPU {
		return &domain.CapacityError{
			Dimension: "cpu",
			Required:  demand.TotalCPU,
			Available: maxCPU,
		}
	}
	return &domain.CapacityError{
		Dimension: "memory",
		Required:  demand.TotalMemoryGB,
		Available: maxMemoryCoveringCPU,
	}
}
