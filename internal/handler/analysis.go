package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/clabops/backend-go/internal/coordinator"
	"github.com/clabops/backend-go/internal/db"
	"github.com/clabops/backend-go/internal/domain"
	"github.com/clabops/backend-go/internal/observability"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AnalysisHandler runs the end-to-end pipeline and serves analysis history
type AnalysisHandler struct {
	svc     *coordinator.Service
	store   *db.Store
	metrics *observability.Metrics
}

// NewAnalysisHandler creates a new AnalysisHandler; store may be nil when
// history is disabled
func NewAnalysisHandler(svc *coordinator.Service, store *db.Store, metrics *observability.Metrics) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, store: store, metrics: metrics}
}

// Complete runs repair, demand extraction, optimization and comparison over
// one topology and records the run
func (h *AnalysisHandler) Complete(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordAnalysis("complete", "error")
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	doc, err := req.load()
	if err != nil {
		h.metrics.RecordAnalysis("complete", "error")
		respondLoadError(c, err)
		return
	}

	policy := domain.PlanPolicy{
		HighAvailability: req.HighAvailability,
		Discounted:       req.Discounted,
	}
	result, err := h.svc.RunComplete(doc, policy)
	if err != nil {
		var capErr *domain.CapacityError
		if errors.As(err, &capErr) {
			h.metrics.RecordAnalysis("complete", "capacity_error")
			h.metrics.RecordCapacityError()
			respondCapacityError(c, capErr)
			return
		}
		h.metrics.RecordAnalysis("complete", "error")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	h.metrics.RecordAnalysis("complete", "success")
	h.metrics.RecordRepairFixes(result.Report.Count())
	h.metrics.RecordPlan(result.Plan.MonthlyUSD)

	runID := ""
	if h.store != nil {
		runID, err = h.store.RecordRun(c.Request.Context(), db.RunRecord{
			TopologyName:  result.TopologyName,
			Operation:     "complete",
			NodeCount:     result.Summary.NodeCount,
			TotalCPU:      result.Demand.TotalCPU,
			TotalMemoryGB: result.Demand.TotalMemoryGB,
			MonthlyCost:   result.Plan.MonthlyUSD,
			FixesApplied:  result.Report.Count(),
		})
		if err != nil {
			log.WithError(err).Warn("Failed to record analysis run")
			runID = ""
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":   runID,
		"analysis": result,
		"commands": coordinator.DeploymentCommands(result.Plan),
	})
}

// Capabilities lists the dispatchable analysis operations
func (h *AnalysisHandler) Capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"capabilities": h.svc.Capabilities()})
}

// History returns recent analysis runs
func (h *AnalysisHandler) History(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": domain.ErrHistoryDisabled.Error()})
		return
	}

	daysStr := c.DefaultQuery("days", "30")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days < 1 || days > 365 {
		days = 30
	}

	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	records, err := h.store.ListRunsSince(c.Request.Context(), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":        records,
		"count":       len(records),
		"period_days": days,
	})
}
