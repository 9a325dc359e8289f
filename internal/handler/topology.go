package handler

import (
	"net/http"

	"github.com/clabops/backend-go/internal/coordinator"
	"github.com/clabops/backend-go/internal/observability"
	"github.com/clabops/backend-go/internal/topology"
	"github.com/gin-gonic/gin"
)

// TopologyHandler handles topology validation, repair and structure analysis
type TopologyHandler struct {
	svc     *coordinator.Service
	metrics *observability.Metrics
}

// NewTopologyHandler creates a new TopologyHandler
func NewTopologyHandler(svc *coordinator.Service, metrics *observability.Metrics) *TopologyHandler {
	return &TopologyHandler{svc: svc, metrics: metrics}
}

// Validate checks a topology against the schema without modifying it
func (h *TopologyHandler) Validate(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		h.metrics.RecordAnalysis("validate", "error")
		return
	}

	result := h.svc.Validate(doc)
	h.metrics.RecordAnalysis("validate", "success")
	c.JSON(http.StatusOK, gin.H{
		"topology_name": doc.DisplayName(),
		"is_valid":      result.Valid,
		"errors":        result.Violations,
		"warnings":      result.Warnings,
	})
}

// Repair returns a repaired copy of the topology and the applied fixes
func (h *TopologyHandler) Repair(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		h.metrics.RecordAnalysis("repair", "error")
		return
	}

	repaired, report := h.svc.Repair(doc)
	repairedYAML, err := topology.Marshal(repaired)
	if err != nil {
		h.metrics.RecordAnalysis("repair", "error")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	h.metrics.RecordAnalysis("repair", "success")
	h.metrics.RecordRepairFixes(report.Count())
	c.JSON(http.StatusOK, gin.H{
		"topology_name": repaired.DisplayName(),
		"is_valid":      h.svc.Validate(repaired).Valid,
		"repairs":       report.Fixes,
		"repair_count":  report.Count(),
		"topology_yaml": string(repairedYAML),
	})
}

// Analyze returns a read-only structure summary
func (h *TopologyHandler) Analyze(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		h.metrics.RecordAnalysis("analyze_structure", "error")
		return
	}

	summary := h.svc.Analyze(doc)
	h.metrics.RecordAnalysis("analyze_structure", "success")
	c.JSON(http.StatusOK, summary)
}
