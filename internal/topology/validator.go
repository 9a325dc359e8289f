package topology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clabops/backend-go/internal/domain"
)

// Validator checks parseable documents against the containerlab subset schema.
// It only reports defects; it never modifies the document.
type Validator struct {
	knownKinds map[string]struct{}
}

// NewValidator creates a Validator accepting the standard node kinds
func NewValidator() *Validator {
	kinds := make(map[string]struct{})
	for _, k := range domain.KnownKinds() {
		kinds[string(k)] = struct{}{}
	}
	return &Validator{knownKinds: kinds}
}

// Validate returns every structural violation found. Violations make the
// document invalid; warnings do not.
func (v *Validator) Validate(doc *domain.Document) domain.ValidationResult {
	result := domain.ValidationResult{
		Violations: []domain.Violation{},
		Warnings:   []domain.Violation{},
	}

	if doc == nil || doc.Topo == nil {
		result.Violations = append(result.Violations, domain.Violation{
			Kind:    domain.ViolationMissingSection,
			Field:   "topology",
			Message: "missing required 'topology' section",
		})
		return result
	}

	topo := doc.Topo
	if topo.Nodes == nil {
		result.Violations = append(result.Violations, domain.Violation{
			Kind:    domain.ViolationMissingSection,
			Field:   "nodes",
			Message: "missing required 'nodes' section in topology",
		})
	}
	if topo.Links == nil {
		result.Warnings = append(result.Warnings, domain.Violation{
			Kind:    domain.ViolationMissingSection,
			Field:   "links",
			Message: "missing 'links' section - topology may be incomplete",
		})
	}

	for _, name := range sortedNodeNames(topo.Nodes) {
		v.validateNode(name, topo.Nodes[name], &result)
	}
	for i, link := range topo.Links {
		v.validateLink(i, link, topo.Nodes, &result)
	}

	result.Valid = len(result.Violations) == 0
	return result
}

func (v *Validator) validateNode(name string, node *domain.Node, result *domain.ValidationResult) {
	if node == nil || node.Kind == "" {
		result.Violations = append(result.Violations, domain.Violation{
			Kind:    domain.ViolationMissingField,
			Subject: name,
			Field:   "kind",
			Message: fmt.Sprintf("node '%s' missing required 'kind' field", name),
		})
		return
	}
	if _, ok := v.knownKinds[node.Kind]; !ok {
		result.Warnings = append(result.Warnings, domain.Violation{
			Kind:    domain.ViolationUnknownKind,
			Subject: name,
			Field:   "kind",
			Message: fmt.Sprintf("node '%s' has unknown kind '%s'", name, node.Kind),
		})
	}
	if node.Image == "" {
		result.Warnings = append(result.Warnings, domain.Violation{
			Kind:    domain.ViolationMissingField,
			Subject: name,
			Field:   "image",
			Message: fmt.Sprintf("node '%s' missing 'image' field", name),
		})
	}
}

func (v *Validator) validateLink(index int, link *domain.Link, nodes map[string]*domain.Node, result *domain.ValidationResult) {
	subject := fmt.Sprintf("link %d", index)

	if link == nil || link.Endpoints == nil {
		result.Violations = append(result.Violations, domain.Violation{
			Kind:    domain.ViolationBadLink,
			Subject: subject,
			Field:   "endpoints",
			Message: fmt.Sprintf("%s missing 'endpoints' field", subject),
		})
		return
	}
	if len(link.Endpoints) != 2 {
		result.Violations = append(result.Violations, domain.Violation{
			Kind:    domain.ViolationBadLink,
			Subject: subject,
			Field:   "endpoints",
			Message: fmt.Sprintf("%s must have exactly 2 endpoints", subject),
		})
		return
	}

	for _, endpoint := range link.Endpoints {
		nodeName, _, ok := strings.Cut(endpoint, ":")
		if !ok {
			result.Violations = append(result.Violations, domain.Violation{
				Kind:    domain.ViolationBadLink,
				Subject: subject,
				Field:   "endpoints",
				Message: fmt.Sprintf("%s endpoint '%s' must be in format 'node:interface'", subject, endpoint),
			})
			continue
		}
		if _, declared := nodes[nodeName]; !declared {
			result.Violations = append(result.Violations, domain.Violation{
				Kind:    domain.ViolationBadLink,
				Subject: subject,
				Field:   "endpoints",
				Message: fmt.Sprintf("%s references unknown node '%s'", subject, nodeName),
			})
		}
	}
}

func sortedNodeNames(nodes map[string]*domain.Node) []string {
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
