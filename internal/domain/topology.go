package domain

// NodeKind identifies the network OS a topology node emulates
type NodeKind string

const (
	KindNokiaSRLinux NodeKind = "nokia_srlinux"
	KindNokiaSROS    NodeKind = "nokia_sros"
	KindLinux        NodeKind = "linux"
	KindCiscoIOSXE   NodeKind = "cisco_iosxe"
	KindCiscoIOSXR   NodeKind = "cisco_iosxr"
	KindJuniperVMX   NodeKind = "juniper_vmx"
	KindAristaCEOS   NodeKind = "arista_ceos"
	KindSonic        NodeKind = "sonic"
	KindFRR          NodeKind = "frr"
	KindQuagga       NodeKind = "quagga"
	KindOVS          NodeKind = "ovs"
	KindBridge       NodeKind = "bridge"
)

// KnownKinds lists every node kind the validator accepts without warning
func KnownKinds() []NodeKind {
	return []NodeKind{
		KindNokiaSRLinux, KindNokiaSROS, KindLinux,
		KindCiscoIOSXE, KindCiscoIOSXR, KindJuniperVMX,
		KindAristaCEOS, KindSonic, KindFRR, KindQuagga,
		KindOVS, KindBridge,
	}
}

// ResourceSpec is an explicit per-node resource request. Both cpu/cores and
// memory/ram spellings appear in the wild; accessors pick whichever is set.
type ResourceSpec struct {
	CPU      int            `yaml:"cpu,omitempty" json:"cpu,omitempty"`
	Cores    int            `yaml:"cores,omitempty" json:"cores,omitempty"`
	MemoryGB int            `yaml:"memory,omitempty" json:"memory,omitempty"`
	RAMGB    int            `yaml:"ram,omitempty" json:"ram,omitempty"`
	Extra    map[string]any `yaml:",inline" json:"-"`
}

// CPUCount returns the requested CPU cores, 0 when unset
func (r *ResourceSpec) CPUCount() int {
	if r == nil {
		return 0
	}
	if r.CPU > 0 {
		return r.CPU
	}
	return r.Cores
}

// Memory returns the requested memory in GB, 0 when unset
func (r *ResourceSpec) Memory() int {
	if r == nil {
		return 0
	}
	if r.MemoryGB > 0 {
		return r.MemoryGB
	}
	return r.RAMGB
}

// Component is a nested hardware module of a multi-component node
// (SROS control modules, line cards and similar)
type Component struct {
	Name  string         `yaml:"name,omitempty" json:"name,omitempty"`
	Type  string         `yaml:"type,omitempty" json:"type,omitempty"`
	Count int            `yaml:"count,omitempty" json:"count,omitempty"`
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Node is a single emulated network element
type Node struct {
	Kind       string         `yaml:"kind,omitempty" json:"kind,omitempty"`
	Image      string         `yaml:"image,omitempty" json:"image,omitempty"`
	Type       string         `yaml:"type,omitempty" json:"type,omitempty"`
	Resources  *ResourceSpec  `yaml:"resources,omitempty" json:"resources,omitempty"`
	Components []Component    `yaml:"components,omitempty" json:"components,omitempty"`
	Extra      map[string]any `yaml:",inline" json:"-"`
}

// Link connects two node interfaces. Endpoints use "node:interface" form.
type Link struct {
	Endpoints []string       `yaml:"endpoints" json:"endpoints"`
	Extra     map[string]any `yaml:",inline" json:"-"`
}

// Topology holds the node and link declarations of a document
type Topology struct {
	Nodes map[string]*Node `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Links []*Link          `yaml:"links,omitempty" json:"links,omitempty"`
	Extra map[string]any   `yaml:",inline" json:"-"`
}

// Document is a parsed containerlab topology file. Unknown fields at every
// level are captured into Extra and survive a marshal round trip untouched.
type Document struct {
	Name  string         `yaml:"name,omitempty" json:"name,omitempty"`
	Topo  *Topology      `yaml:"topology,omitempty" json:"topology,omitempty"`
	Extra map[string]any `yaml:",inline" json:"-"`
}

// DisplayName returns the topology name or "unnamed"
func (d *Document) DisplayName() string {
	if d == nil || d.Name == "" {
		return "unnamed"
	}
	return d.Name
}

// Clone returns a deep copy. Repairs always operate on a clone so the
// caller's document is never mutated.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Name:  d.Name,
		Extra: cloneMap(d.Extra),
	}
	if d.Topo != nil {
		out.Topo = d.Topo.clone()
	}
	return out
}

func (t *Topology) clone() *Topology {
	out := &Topology{Extra: cloneMap(t.Extra)}
	if t.Nodes != nil {
		out.Nodes = make(map[string]*Node, len(t.Nodes))
		for name, n := range t.Nodes {
			out.Nodes[name] = n.clone()
		}
	}
	if t.Links != nil {
		out.Links = make([]*Link, len(t.Links))
		for i, l := range t.Links {
			out.Links[i] = l.clone()
		}
	}
	return out
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:  n.Kind,
		Image: n.Image,
		Type:  n.Type,
		Extra: cloneMap(n.Extra),
	}
	if n.Resources != nil {
		rc := *n.Resources
		rc.Extra = cloneMap(n.Resources.Extra)
		out.Resources = &rc
	}
	if n.Components != nil {
		out.Components = make([]Component, len(n.Components))
		for i, c := range n.Components {
			cc := c
			cc.Extra = cloneMap(c.Extra)
			out.Components[i] = cc
		}
	}
	return out
}

func (l *Link) clone() *Link {
	if l == nil {
		return nil
	}
	out := &Link{Extra: cloneMap(l.Extra)}
	if l.Endpoints != nil {
		out.Endpoints = append([]string(nil), l.Endpoints...)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return cloneMap(vv)
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
