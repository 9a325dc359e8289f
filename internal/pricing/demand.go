package pricing

import (
	"sort"
	"strings"

	"github.com/clabops/backend-go/internal/domain"
)

// Containerization overhead added to every node on top of its base figures,
// so a topology is never provisioned tighter than it runs.
const (
	OverheadCPU      = 1
	OverheadMemoryGB = 2
)

type resourcePair struct {
	cpu      int
	memoryGB int
}

// kindDefaults is the fallback resource table per node kind and type
var kindDefaults = map[string]map[string]resourcePair{
	string(domain.KindNokiaSRLinux): {
		"default": {2, 4},
		"ixrd3":   {4, 8},
	},
	string(domain.KindNokiaSROS): {
		"default":  {4, 8},
		"cpm":      {2, 4},
		"linecard": {1, 2},
	},
	string(domain.KindLinux):      {"default": {1, 2}},
	string(domain.KindCiscoIOSXE): {"default": {2, 4}},
	string(domain.KindCiscoIOSXR): {"default": {2, 4}},
	string(domain.KindJuniperVMX): {"default": {2, 4}},
	string(domain.KindAristaCEOS): {"default": {2, 4}},
	string(domain.KindSonic):      {"default": {2, 4}},
	string(domain.KindFRR):        {"default": {1, 2}},
	string(domain.KindQuagga):     {"default": {1, 2}},
}

// unknownKindDefault keeps unrecognised kinds from contributing zero
var unknownKindDefault = resourcePair{2, 4}

// componentDefaults maps SROS hardware module types to their footprint
var componentDefaults = map[string]resourcePair{
	"cpm":      {2, 4},
	"cpm2":     {2, 4},
	"cpm3":     {2, 4},
	"cpm4":     {2, 4},
	"linecard": {1, 2},
	"mda":      {1, 2},
	"iom":      {1, 2},
	"sfm":      {1, 2},
}

// Component sums are floored so a chassis never prices below a bare router
const (
	componentMinCPU      = 2
	componentMinMemoryGB = 4
)

// Estimator derives aggregate resource demand from topology documents.
// Stateless; safe for concurrent use.
type Estimator struct{}

// NewEstimator creates an Estimator
func NewEstimator() *Estimator {
	return &Estimator{}
}

// ExtractDemand sums per-node estimates across the document. Explicit
// resource blocks win over component sums, which win over kind defaults.
// A document without nodes yields zero demand; demand is additive across
// disjoint node sets.
func (e *Estimator) ExtractDemand(doc *domain.Document) domain.ResourceDemand {
	demand := domain.ResourceDemand{Nodes: []domain.NodeDemand{}}
	if doc == nil || doc.Topo == nil || doc.Topo.Nodes == nil {
		return demand
	}

	names := make([]string, 0, len(doc.Topo.Nodes))
	for name := range doc.Topo.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		nd := e.estimateNode(name, doc.Topo.Nodes[name])
		demand.Nodes = append(demand.Nodes, nd)
		demand.TotalCPU += nd.CPU
		demand.TotalMemoryGB += nd.MemoryGB
	}
	return demand
}

func (e *Estimator) estimateNode(name string, node *domain.Node) domain.NodeDemand {
	kind := string(domain.KindLinux)
	nodeType := "default"
	if node != nil {
		if node.Kind != "" {
			kind = node.Kind
		}
		if node.Type != "" {
			nodeType = node.Type
		}
	}

	var base resourcePair
	source := domain.DemandDefault

	switch {
	case node != nil && node.Resources.CPUCount() > 0 && node.Resources.Memory() > 0:
		base = resourcePair{node.Resources.CPUCount(), node.Resources.Memory()}
		source = domain.DemandExplicit
	case node != nil && len(node.Components) > 0:
		base = sumComponents(node.Components)
		source = domain.DemandComponents
	default:
		base = standardResources(kind, nodeType)
	}

	return domain.NodeDemand{
		Name:         name,
		Kind:         kind,
		CPU:          base.cpu + OverheadCPU,
		MemoryGB:     base.memoryGB + OverheadMemoryGB,
		BaseCPU:      base.cpu,
		BaseMemoryGB: base.memoryGB,
		Source:       source,
	}
}

func sumComponents(components []domain.Component) resourcePair {
	var total resourcePair
	for _, c := range components {
		compType := strings.ToLower(c.Type)
		if compType == "" {
			compType = strings.ToLower(c.Name)
		}
		pair, ok := componentDefaults[compType]
		if !ok {
			continue
		}
		count := c.Count
		if count < 1 {
			count = 1
		}
		total.cpu += pair.cpu * count
		total.memoryGB += pair.memoryGB * count
	}
	if total.cpu < componentMinCPU {
		total.cpu = componentMinCPU
	}
	if total.memoryGB < componentMinMemoryGB {
		total.memoryGB = componentMinMemoryGB
	}
	return total
}

func standardResources(kind, nodeType string) resourcePair {
	byType, ok := kindDefaults[kind]
	if !ok {
		return unknownKindDefault
	}
	if pair, ok := byType[nodeType]; ok {
		return pair
	}
	return byType["default"]
}
