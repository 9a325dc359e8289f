package topology

import (
	"testing"

	"github.com/clabops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepairer() *Repairer {
	return NewRepairer(NewValidator())
}

func TestRepairValidDocumentIsNoop(t *testing.T) {
	doc := validDoc()
	for _, n := range doc.Topo.Nodes {
		n.Type = "default"
	}

	repaired, report := newRepairer().Repair(doc)

	assert.Empty(t, report.Fixes)
	origYAML, err := Marshal(doc)
	require.NoError(t, err)
	repairedYAML, err := Marshal(repaired)
	require.NoError(t, err)
	assert.Equal(t, string(origYAML), string(repairedYAML))
}

func TestRepairIsIdempotent(t *testing.T) {
	doc, err := Parse([]byte(`topology:
  nodes:
    r1: {}
    r2:
      kind: nokia_sros
`))
	require.NoError(t, err)

	r := newRepairer()
	once, firstReport := r.Repair(doc)
	assert.NotEmpty(t, firstReport.Fixes)

	twice, secondReport := r.Repair(once)
	assert.Empty(t, secondReport.Fixes)

	onceYAML, err := Marshal(once)
	require.NoError(t, err)
	twiceYAML, err := Marshal(twice)
	require.NoError(t, err)
	assert.Equal(t, string(onceYAML), string(twiceYAML))
}

func TestRepairMissingTopologySection(t *testing.T) {
	repaired, report := newRepairer().Repair(&domain.Document{Name: "lab1"})

	require.Len(t, report.Fixes, 1)
	assert.Equal(t, domain.FixAddedSection, report.Fixes[0].Kind)
	assert.Equal(t, "topology", report.Fixes[0].Subject)

	require.NotNil(t, repaired.Topo)
	assert.NotNil(t, repaired.Topo.Nodes)
	assert.NotNil(t, repaired.Topo.Links)
	assert.True(t, NewValidator().Validate(repaired).Valid)
}

func TestRepairNodeDefaults(t *testing.T) {
	doc, err := Parse([]byte(`topology:
  nodes:
    r1:
      kind: nokia_sros
    r2: {}
  links: []
`))
	require.NoError(t, err)

	repaired, report := newRepairer().Repair(doc)

	r1 := repaired.Topo.Nodes["r1"]
	assert.Equal(t, "nokia_sros", r1.Kind)
	assert.Equal(t, "ghcr.io/nokia/sros", r1.Image)
	assert.Equal(t, "default", r1.Type)

	r2 := repaired.Topo.Nodes["r2"]
	assert.Equal(t, "linux", r2.Kind)
	assert.Equal(t, "ghcr.io/hellt/network-multitool", r2.Image)
	assert.Equal(t, "default", r2.Type)

	// r1: image + type, r2: kind + image + type
	assert.Len(t, report.Fixes, 5)
	assert.True(t, NewValidator().Validate(repaired).Valid)
}

func TestRepairFallbackImageForUnlistedKind(t *testing.T) {
	doc := &domain.Document{Topo: &domain.Topology{
		Nodes: map[string]*domain.Node{"sw1": {Kind: "ovs", Type: "default"}},
		Links: []*domain.Link{},
	}}

	repaired, report := newRepairer().Repair(doc)

	assert.Equal(t, fallbackImage, repaired.Topo.Nodes["sw1"].Image)
	require.Len(t, report.Fixes, 1)
	assert.Equal(t, domain.FixNodeDefault, report.Fixes[0].Kind)
}

func TestRepairLinks(t *testing.T) {
	doc, err := Parse([]byte(`topology:
  nodes:
    r1:
      kind: linux
      image: ghcr.io/hellt/network-multitool
      type: default
    r2:
      kind: linux
      image: ghcr.io/hellt/network-multitool
      type: default
  links:
    - endpoints: []
    - endpoints: ["r1:eth2"]
`))
	require.NoError(t, err)

	repaired, report := newRepairer().Repair(doc)

	links := repaired.Topo.Links
	require.Len(t, links, 2)
	assert.Equal(t, []string{"r1:eth1", "r2:eth1"}, links[0].Endpoints)
	assert.Equal(t, []string{"r1:eth2", "r2:eth1"}, links[1].Endpoints)
	assert.Len(t, report.Fixes, 2)
	assert.True(t, NewValidator().Validate(repaired).Valid)
}

func TestRepairNeverMutatesInput(t *testing.T) {
	doc := &domain.Document{Topo: &domain.Topology{
		Nodes: map[string]*domain.Node{"r1": {Kind: "linux"}},
	}}

	_, report := newRepairer().Repair(doc)
	assert.NotEmpty(t, report.Fixes)

	// original untouched
	assert.Empty(t, doc.Topo.Nodes["r1"].Image)
	assert.Empty(t, doc.Topo.Nodes["r1"].Type)
	assert.Nil(t, doc.Topo.Links)
}

func TestRepairMissingLinksAndImageYieldsTwoFixes(t *testing.T) {
	doc, err := Parse([]byte(`name: lab1
topology:
  nodes:
    r1:
      kind: nokia_srlinux
      type: default
    r2:
      kind: linux
      image: ghcr.io/hellt/network-multitool
      type: default
`))
	require.NoError(t, err)

	repaired, report := newRepairer().Repair(doc)

	require.Len(t, report.Fixes, 2)
	assert.Equal(t, domain.FixAddedSection, report.Fixes[0].Kind)
	assert.Equal(t, "links", report.Fixes[0].Subject)
	assert.Equal(t, domain.FixNodeDefault, report.Fixes[1].Kind)
	assert.Equal(t, "r1", report.Fixes[1].Subject)
	assert.True(t, NewValidator().Validate(repaired).Valid)
}
