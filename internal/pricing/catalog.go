package pricing

import (
	"fmt"
	"math"
	"os"

	"github.com/clabops/backend-go/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	// SpotPriceFactor is the fraction of the on-demand price paid for a
	// preemptible instance (a 70% reduction)
	SpotPriceFactor = 0.30

	// hoursPerMonth matches the GCP billing convention of 30.44 days
	hoursPerMonth = 24 * 30.44

	customCPUHourlyUSD    = 0.0485
	customMemoryHourlyUSD = 0.0065
)

// DefaultRegion is the region the built-in price table was sampled in
const DefaultRegion = "us-east4"

// catalogEntry is the on-disk form of one price table row. Monthly prices
// are reference data, not derived from the hourly rate.
type catalogEntry struct {
	Name       string  `yaml:"name"`
	CPU        int     `yaml:"cpu"`
	MemoryGB   int     `yaml:"memory_gb"`
	HourlyUSD  float64 `yaml:"hourly_usd"`
	MonthlyUSD float64 `yaml:"monthly_usd"`
}

// n2Table is the N2 standard machine-type price table for us-east4
var n2Table = []catalogEntry{
	{"n2-standard-2", 2, 8, 0.097, 65.28},
	{"n2-standard-4", 4, 16, 0.194, 130.56},
	{"n2-standard-8", 8, 32, 0.388, 261.12},
	{"n2-standard-16", 16, 64, 0.774, 520.92},
	{"n2-standard-32", 32, 128, 1.548, 1041.84},
	{"n2-standard-48", 48, 192, 2.322, 1562.76},
	{"n2-standard-64", 64, 256, 3.096, 2083.68},
	{"n2-standard-80", 80, 320, 3.870, 2604.60},
	{"n2-standard-96", 96, 384, 4.644, 3125.52},
	{"n2-standard-128", 128, 512, 6.192, 4167.36},
}

// Catalog is an immutable machine-type price table. It is injected into the
// optimizer at construction and never mutated at runtime.
type Catalog struct {
	region string
	offers []domain.MachineOffer
	byName map[string]domain.MachineOffer
}

// NewDefaultCatalog returns the built-in N2 price table
func NewDefaultCatalog(region string) *Catalog {
	if region == "" {
		region = DefaultRegion
	}
	return newCatalog(region, n2Table)
}

// LoadCatalogFile reads a price table from a YAML file. The file holds a
// list of entries with name, cpu, memory_gb, hourly_usd and monthly_usd.
func LoadCatalogFile(path, region string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price table %s: %w", path, err)
	}
	var entries []catalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse price table %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("price table %s is empty", path)
	}
	if region == "" {
		region = DefaultRegion
	}
	return newCatalog(region, entries), nil
}

func newCatalog(region string, entries []catalogEntry) *Catalog {
	c := &Catalog{
		region: region,
		offers: make([]domain.MachineOffer, 0, len(entries)),
		byName: make(map[string]domain.MachineOffer, len(entries)),
	}
	for _, e := range entries {
		offer := domain.MachineOffer{
			Name:           e.Name,
			CPU:            e.CPU,
			MemoryGB:       e.MemoryGB,
			HourlyUSD:      e.HourlyUSD,
			MonthlyUSD:     e.MonthlyUSD,
			SpotHourlyUSD:  roundCents(e.HourlyUSD * SpotPriceFactor),
			SpotMonthlyUSD: roundCents(e.MonthlyUSD * SpotPriceFactor),
		}
		c.offers = append(c.offers, offer)
		c.byName[offer.Name] = offer
	}
	return c
}

// Region returns the region the table was priced for
func (c *Catalog) Region() string {
	return c.region
}

// Offers returns a copy of the price table in catalog order
func (c *Catalog) Offers() []domain.MachineOffer {
	return append([]domain.MachineOffer(nil), c.offers...)
}

// Offer looks up a machine type by name
func (c *Catalog) Offer(name string) (domain.MachineOffer, error) {
	offer, ok := c.byName[name]
	if !ok {
		return domain.MachineOffer{}, fmt.Errorf("%w: %s", domain.ErrUnknownMachineType, name)
	}
	return offer, nil
}

// CustomOffer prices a custom machine shape from per-CPU and per-GB rates
func (c *Catalog) CustomOffer(cpu, memoryGB int) domain.MachineOffer {
	if cpu < 1 {
		cpu = 1
	}
	if memoryGB < 1 {
		memoryGB = 1
	}
	hourly := float64(cpu)*customCPUHourlyUSD + float64(memoryGB)*customMemoryHourlyUSD
	monthly := hourly * hoursPerMonth
	return domain.MachineOffer{
		Name:           fmt.Sprintf("custom-%d-%d", cpu, memoryGB),
		CPU:            cpu,
		MemoryGB:       memoryGB,
		HourlyUSD:      hourly,
		MonthlyUSD:     roundCents(monthly),
		SpotHourlyUSD:  hourly * SpotPriceFactor,
		SpotMonthlyUSD: roundCents(monthly * SpotPriceFactor),
		Custom:         true,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
