package topology

import (
	"github.com/clabops/backend-go/internal/domain"
)

// Analyzer produces read-only structural summaries of documents
type Analyzer struct {
	validator *Validator
}

// NewAnalyzer creates an Analyzer backed by the given validator
func NewAnalyzer(validator *Validator) *Analyzer {
	return &Analyzer{validator: validator}
}

// Analyze counts nodes by kind, counts links and flags multi-component
// nodes. The input document is never modified.
func (a *Analyzer) Analyze(doc *domain.Document) domain.StructureSummary {
	summary := domain.StructureSummary{
		Name:      doc.DisplayName(),
		NodeKinds: map[string]int{},
	}

	if doc != nil && doc.Topo != nil {
		topo := doc.Topo
		summary.NodeCount = len(topo.Nodes)
		summary.LinkCount = len(topo.Links)

		for _, name := range sortedNodeNames(topo.Nodes) {
			node := topo.Nodes[name]
			kind := "unknown"
			if node != nil && node.Kind != "" {
				kind = node.Kind
			}
			summary.NodeKinds[kind]++
			if node != nil && len(node.Components) > 0 {
				summary.MultiComponentNodes = append(summary.MultiComponentNodes, name)
			}
		}
	}

	summary.Valid = a.validator.Validate(doc).Valid
	return summary
}
