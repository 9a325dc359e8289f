package domain

// ViolationKind classifies a structural defect found during validation
type ViolationKind string

const (
	ViolationMissingSection ViolationKind = "missing_section"
	ViolationMissingField   ViolationKind = "missing_field"
	ViolationUnknownKind    ViolationKind = "unknown_kind"
	ViolationBadLink        ViolationKind = "bad_link"
)

// Violation is a single structural defect. Subject names the node or link
// concerned, Field the missing or malformed field.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Subject string        `json:"subject,omitempty"`
	Field   string        `json:"field,omitempty"`
	Message string        `json:"message"`
}

// ValidationResult is the outcome of validating a parseable document.
// Structural defects are reported, never raised.
type ValidationResult struct {
	Valid      bool        `json:"is_valid"`
	Violations []Violation `json:"errors"`
	Warnings   []Violation `json:"warnings"`
}

// FixKind classifies an applied repair
type FixKind string

const (
	FixAddedSection FixKind = "added_section"
	FixNodeDefault  FixKind = "node_default"
	FixLinkRepair   FixKind = "link_repair"
)

// Fix is one applied repair, in application order
type Fix struct {
	Kind    FixKind `json:"kind"`
	Subject string  `json:"subject,omitempty"`
	Message string  `json:"message"`
}

// RepairReport is the ordered list of fixes applied by one repair pass.
// Empty for an already-valid document.
type RepairReport struct {
	Fixes []Fix `json:"repairs"`
}

// Count returns the number of applied fixes
func (r RepairReport) Count() int {
	return len(r.Fixes)
}

// StructureSummary is a read-only structural overview of a document
type StructureSummary struct {
	Name                string         `json:"topology_name"`
	NodeCount           int            `json:"node_count"`
	LinkCount           int            `json:"link_count"`
	NodeKinds           map[string]int `json:"node_kinds"`
	MultiComponentNodes []string       `json:"multi_component_nodes,omitempty"`
	Valid               bool           `json:"is_valid"`
}
