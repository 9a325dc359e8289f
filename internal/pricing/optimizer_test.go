package pricing

import (
	"testing"

	"github.com/clabops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOptimizer() *Optimizer {
	return NewOptimizer(NewDefaultCatalog(""))
}

func TestOptimizePicksSmallestFittingOffer(t *testing.T) {
	tests := []struct {
		name     string
		cpu      int
		memoryGB int
		want     string
	}{
		{"tiny", 1, 1, "n2-standard-2"},
		{"exact fit", 16, 64, "n2-standard-16"},
		{"cpu drives", 10, 8, "n2-standard-16"},
		{"memory drives", 2, 100, "n2-standard-32"},
		{"largest", 128, 512, "n2-standard-128"},
	}

	o := newOptimizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := o.Optimize(domain.ResourceDemand{TotalCPU: tt.cpu, TotalMemoryGB: tt.memoryGB}, domain.PlanPolicy{})
			require.NoError(t, err)

			assert.Equal(t, tt.want, plan.Offer.Name)
			assert.GreaterOrEqual(t, plan.Offer.CPU, tt.cpu)
			assert.GreaterOrEqual(t, plan.Offer.MemoryGB, tt.memoryGB)
		})
	}
}

func TestOptimizeStandardPlan(t *testing.T) {
	plan, err := newOptimizer().Optimize(domain.ResourceDemand{TotalCPU: 16, TotalMemoryGB: 32}, domain.PlanPolicy{})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanOnDemandStandard, plan.Variant)
	assert.Equal(t, "n2-standard-16", plan.Offer.Name)
	assert.Equal(t, 1, plan.Count)
	assert.Equal(t, "us-east4", plan.Region)
	assert.InDelta(t, 520.92, plan.MonthlyUSD, 1e-9)
	assert.InDelta(t, 520.92, plan.OnDemandMonthlyUSD, 1e-9)
	assert.InDelta(t, 156.28, plan.SpotMonthlyUSD, 1e-9)
}

func TestOptimizeDiscountedProjectsSpotPrices(t *testing.T) {
	o := newOptimizer()
	demand := domain.ResourceDemand{TotalCPU: 16, TotalMemoryGB: 32}

	standard, err := o.Optimize(demand, domain.PlanPolicy{})
	require.NoError(t, err)
	spot, err := o.Optimize(demand, domain.PlanPolicy{Discounted: true})
	require.NoError(t, err)

	// the discount never changes which machine matches
	assert.Equal(t, standard.Offer.Name, spot.Offer.Name)
	assert.Equal(t, domain.PlanSpotStandard, spot.Variant)
	assert.InDelta(t, 156.28, spot.MonthlyUSD, 1e-9)
	assert.Less(t, spot.MonthlyUSD, standard.MonthlyUSD)
}

func TestOptimizeHighAvailabilityDoubles(t *testing.T) {
	plan, err := newOptimizer().Optimize(
		domain.ResourceDemand{TotalCPU: 16, TotalMemoryGB: 32},
		domain.PlanPolicy{HighAvailability: true},
	)
	require.NoError(t, err)

	assert.Equal(t, domain.PlanHighAvailability, plan.Variant)
	assert.Equal(t, 2, plan.Count)
	assert.InDelta(t, 1041.84, plan.MonthlyUSD, 1e-9)
	assert.InDelta(t, 1041.84, plan.OnDemandMonthlyUSD, 1e-9)
}

func TestOptimizeCapacityErrorCPU(t *testing.T) {
	_, err := newOptimizer().Optimize(domain.ResourceDemand{TotalCPU: 200, TotalMemoryGB: 64}, domain.PlanPolicy{})
	require.Error(t, err)

	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "cpu", capErr.Dimension)
	assert.Equal(t, 200, capErr.Required)
	assert.Equal(t, 128, capErr.Available)
	assert.Equal(t, 72, capErr.Shortfall())
}

func TestOptimizeCapacityErrorMemory(t *testing.T) {
	_, err := newOptimizer().Optimize(domain.ResourceDemand{TotalCPU: 8, TotalMemoryGB: 600}, domain.PlanPolicy{})
	require.Error(t, err)

	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "memory", capErr.Dimension)
	assert.Equal(t, 600, capErr.Required)
	assert.Equal(t, 512, capErr.Available)
}

func TestCompareVariantsAndOrdering(t *testing.T) {
	plans, err := newOptimizer().Compare(domain.ResourceDemand{TotalCPU: 16, TotalMemoryGB: 32})
	require.NoError(t, err)
	require.Len(t, plans, 3)

	variants := map[string]bool{}
	for _, p := range plans {
		variants[p.Variant] = true
	}
	assert.True(t, variants[domain.PlanOnDemandStandard])
	assert.True(t, variants[domain.PlanSpotStandard])
	assert.True(t, variants[domain.PlanHighAvailability])

	for i := 1; i < len(plans); i++ {
		assert.LessOrEqual(t, plans[i-1].OnDemandMonthlyUSD, plans[i].OnDemandMonthlyUSD)
	}
	assert.Equal(t, domain.PlanHighAvailability, plans[2].Variant)
}

func TestCompareSurfacesCapacityError(t *testing.T) {
	_, err := newOptimizer().Compare(domain.ResourceDemand{TotalCPU: 999, TotalMemoryGB: 8})

	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "cpu", capErr.Dimension)
}

// Two nodes asking for 7 CPU / 14 GB each plus per-node overhead add up to
// 16 CPU / 32 GB, landing on n2-standard-16.
func TestDemandToPlanEndToEnd(t *testing.T) {
	doc := docWithNodes(map[string]*domain.Node{
		"r1": {Kind: "linux", Resources: &domain.ResourceSpec{CPU: 7, MemoryGB: 14}},
		"r2": {Kind: "linux", Resources: &domain.ResourceSpec{CPU: 7, MemoryGB: 14}},
	})

	demand := NewEstimator().ExtractDemand(doc)
	assert.Equal(t, 16, demand.TotalCPU)
	assert.Equal(t, 32, demand.TotalMemoryGB)

	o := newOptimizer()
	plan, err := o.Optimize(demand, domain.PlanPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "n2-standard-16", plan.Offer.Name)
	assert.InDelta(t, 520.92, plan.MonthlyUSD, 1e-9)

	spot, err := o.Optimize(demand, domain.PlanPolicy{Discounted: true})
	require.NoError(t, err)
	assert.InDelta(t, 156.28, spot.MonthlyUSD, 1e-9)
}
