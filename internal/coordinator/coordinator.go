package coordinator

import (
	"fmt"

	"github.com/clabops/backend-go/internal/domain"
	"github.com/clabops/backend-go/internal/pricing"
	"github.com/clabops/backend-go/internal/topology"
)

// Capability names one analysis operation an external orchestrator can
// dispatch. The core never depends on the orchestrator's internals.
type Capability string

const (
	CapValidate         Capability = "validate"
	CapRepair           Capability = "repair"
	CapAnalyzeStructure Capability = "analyze_structure"
	CapExtractDemand    Capability = "extract_demand"
	CapOptimize         Capability = "optimize"
	CapCompare          Capability = "compare"
)

// Service bundles the topology and pricing tools behind one façade and runs
// the end-to-end pipeline: repair, extract demand, optimize, compare.
// Stateless apart from the injected immutable catalog.
type Service struct {
	validator *topology.Validator
	repairer  *topology.Repairer
	analyzer  *topology.Analyzer
	estimator *pricing.Estimator
	optimizer *pricing.Optimizer
	catalog   *pricing.Catalog
}

// NewService wires the tools over an injected price catalog
func NewService(catalog *pricing.Catalog) *Service {
	validator := topology.NewValidator()
	return &Service{
		validator: validator,
		repairer:  topology.NewRepairer(validator),
		analyzer:  topology.NewAnalyzer(validator),
		estimator: pricing.NewEstimator(),
		optimizer: pricing.NewOptimizer(catalog),
		catalog:   catalog,
	}
}

// Capabilities lists the dispatchable operations
func (s *Service) Capabilities() []Capability {
	return []Capability{
		CapValidate, CapRepair, CapAnalyzeStructure,
		CapExtractDemand, CapOptimize, CapCompare,
	}
}

// HasCapability reports whether a capability name is dispatchable
func (s *Service) HasCapability(name string) bool {
	for _, c := range s.Capabilities() {
		if string(c) == name {
			return true
		}
	}
	return false
}

// Validate checks a document against the schema
func (s *Service) Validate(doc *domain.Document) domain.ValidationResult {
	return s.validator.Validate(doc)
}

// Repair returns a repaired copy of the document and the applied fixes
func (s *Service) Repair(doc *domain.Document) (*domain.Document, domain.RepairReport) {
	return s.repairer.Repair(doc)
}

// Analyze summarizes the document structure
func (s *Service) Analyze(doc *domain.Document) domain.StructureSummary {
	return s.analyzer.Analyze(doc)
}

// ExtractDemand aggregates the document's resource footprint
func (s *Service) ExtractDemand(doc *domain.Document) domain.ResourceDemand {
	return s.estimator.ExtractDemand(doc)
}

// Optimize matches a demand against the catalog under a policy
func (s *Service) Optimize(demand domain.ResourceDemand, policy domain.PlanPolicy) (domain.DeploymentPlan, error) {
	return s.optimizer.Optimize(demand, policy)
}

// Compare ranks the deployment variants for a demand
func (s *Service) Compare(demand domain.ResourceDemand) ([]domain.DeploymentPlan, error) {
	return s.optimizer.Compare(demand)
}

// Catalog returns the injected price catalog
func (s *Service) Catalog() *pricing.Catalog {
	return s.catalog
}

// CompleteAnalysis is the result of the full pipeline over one document
type CompleteAnalysis struct {
	TopologyName string                  `json:"topology_name"`
	Validation   domain.ValidationResult `json:"validation"`
	Report       domain.RepairReport     `json:"repair_report"`
	RepairedYAML string                  `json:"repaired_topology_yaml"`
	Summary      domain.StructureSummary `json:"structure"`
	Demand       domain.ResourceDemand   `json:"resource_demand"`
	Plan         domain.DeploymentPlan   `json:"deployment_plan"`
	Comparison   []domain.DeploymentPlan `json:"comparison"`
}

// RunComplete validates and repairs the document, then extracts demand and
// prices it under the given policy. The input document is never mutated.
func (s *Service) RunComplete(doc *domain.Document, policy domain.PlanPolicy) (*CompleteAnalysis, error) {
	validation := s.validator.Validate(doc)
	repaired, report := s.repairer.Repair(doc)

	repairedYAML, err := topology.Marshal(repaired)
	if err != nil {
		return nil, fmt.Errorf("serialize repaired topology: %w", err)
	}

	demand := s.estimator.ExtractDemand(repaired)
	plan, err := s.optimizer.Optimize(demand, policy)
	if err != nil {
		return nil, err
	}
	comparison, err := s.optimizer.Compare(demand)
	if err != nil {
		return nil, err
	}

	return &CompleteAnalysis{
		TopologyName: repaired.DisplayName(),
		Validation:   validation,
		Report:       report,
		RepairedYAML: string(repairedYAML),
		Summary:      s.analyzer.Analyze(repaired),
		Demand:       demand,
		Plan:         plan,
		Comparison:   comparison,
	}, nil
}
