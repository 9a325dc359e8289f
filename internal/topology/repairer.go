package topology

import (
	"fmt"
	"strings"

	"github.com/clabops/backend-go/internal/domain"
)

// fallbackImage is used for kinds without a catalog entry so every node
// declares an image after repair
const fallbackImage = "ghcr.io/hellt/network-multitool"

// defaultImages maps node kinds to their conventional container images
var defaultImages = map[string]string{
	string(domain.KindNokiaSRLinux): "ghcr.io/nokia/srlinux",
	string(domain.KindNokiaSROS):    "ghcr.io/nokia/sros",
	string(domain.KindLinux):        "ghcr.io/hellt/network-multitool",
	string(domain.KindCiscoIOSXE):   "ghcr.io/cisco/iosxe",
	string(domain.KindCiscoIOSXR):   "ghcr.io/cisco/iosxr",
	string(domain.KindJuniperVMX):   "ghcr.io/juniper/vmx",
	string(domain.KindAristaCEOS):   "ghcr.io/arista/ceos",
	string(domain.KindSonic):        "ghcr.io/opennetworking/sonic",
	string(domain.KindFRR):          "ghcr.io/hellt/frr",
	string(domain.KindQuagga):       "ghcr.io/hellt/quagga",
}

// Repairer applies deterministic default-filling to structurally broken
// documents. Fixes are applied in a fixed priority order: missing sections
// first, then node fields, then link endpoints.
type Repairer struct {
	validator *Validator
}

// NewRepairer creates a Repairer backed by the given validator
func NewRepairer(validator *Validator) *Repairer {
	return &Repairer{validator: validator}
}

// Repair returns a repaired deep copy of the document plus a report with one
// entry per applied fix. Repairing an already-valid document returns an
// identical copy and an empty report, so Repair is idempotent.
func (r *Repairer) Repair(doc *domain.Document) (*domain.Document, domain.RepairReport) {
	repaired := doc.Clone()
	if repaired == nil {
		repaired = &domain.Document{}
	}
	report := domain.RepairReport{Fixes: []domain.Fix{}}

	if repaired.Topo == nil {
		repaired.Topo = &domain.Topology{
			Nodes: map[string]*domain.Node{},
			Links: []*domain.Link{},
		}
		report.Fixes = append(report.Fixes, domain.Fix{
			Kind:    domain.FixAddedSection,
			Subject: "topology",
			Message: "added missing 'topology' section",
		})
	}

	topo := repaired.Topo
	if topo.Nodes == nil {
		topo.Nodes = map[string]*domain.Node{}
		report.Fixes = append(report.Fixes, domain.Fix{
			Kind:    domain.FixAddedSection,
			Subject: "nodes",
			Message: "added missing 'nodes' section",
		})
	}
	if topo.Links == nil {
		topo.Links = []*domain.Link{}
		report.Fixes = append(report.Fixes, domain.Fix{
			Kind:    domain.FixAddedSection,
			Subject: "links",
			Message: "added missing 'links' section",
		})
	}

	for _, name := range sortedNodeNames(topo.Nodes) {
		r.repairNode(name, topo, &report)
	}
	for i, link := range topo.Links {
		r.repairLink(i, link, topo.Nodes, &report)
	}

	return repaired, report
}

func (r *Repairer) repairNode(name string, topo *domain.Topology, report *domain.RepairReport) {
	node := topo.Nodes[name]
	if node == nil {
		node = &domain.Node{}
		topo.Nodes[name] = node
	}

	if node.Kind == "" {
		node.Kind = string(domain.KindLinux)
		report.Fixes = append(report.Fixes, domain.Fix{
			Kind:    domain.FixNodeDefault,
			Subject: name,
			Message: fmt.Sprintf("added missing 'kind' field to node '%s'", name),
		})
	}
	if node.Image == "" {
		image, ok := defaultImages[node.Kind]
		if !ok {
			image = fallbackImage
		}
		node.Image = image
		report.Fixes = append(report.Fixes, domain.Fix{
			Kind:    domain.FixNodeDefault,
			Subject: name,
			Message: fmt.Sprintf("added missing 'image' field to node '%s'", name),
		})
	}
	if node.Type == "" {
		node.Type = "default"
		report.Fixes = append(report.Fixes, domain.Fix{
			Kind:    domain.FixNodeDefault,
			Subject: name,
			Message: fmt.Sprintf("added missing 'type' field to node '%s'", name),
		})
	}
}

func (r *Repairer) repairLink(index int, link *domain.Link, nodes map[string]*domain.Node, report *domain.RepairReport) {
	subject := fmt.Sprintf("link %d", index)

	if link.Endpoints == nil {
		link.Endpoints = []string{}
		report.Fixes = append(report.Fixes, domain.Fix{
			Kind:    domain.FixLinkRepair,
			Subject: subject,
			Message: fmt.Sprintf("added missing 'endpoints' field to %s", subject),
		})
	}

	switch len(link.Endpoints) {
	case 0:
		// synthesize a link between the first two declared nodes
		names := sortedNodeNames(nodes)
		if len(names) >= 2 {
			link.Endpoints = append(link.Endpoints, names[0]+":eth1", names[1]+":eth1")
			report.Fixes = append(report.Fixes, domain.Fix{
				Kind:    domain.FixLinkRepair,
				Subject: subject,
				Message: fmt.Sprintf("created basic %s between nodes '%s' and '%s'", subject, names[0], names[1]),
			})
		}
	case 1:
		// pick a peer for the dangling endpoint
		nodeName, _, ok := strings.Cut(link.Endpoints[0], ":")
		if !ok {
			return
		}
		if _, declared := nodes[nodeName]; !declared {
			return
		}
		for _, other := range sortedNodeNames(nodes) {
			if other != nodeName {
				link.Endpoints = append(link.Endpoints, other+":eth1")
				report.Fixes = append(report.Fixes, domain.Fix{
					Kind:    domain.FixLinkRepair,
					Subject: subject,
					Message: fmt.Sprintf("added second endpoint '%s:eth1' to %s", other, subject),
				})
				break
			}
		}
	}
}
