package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clabops/backend-go/internal/coordinator"
	"github.com/clabops/backend-go/internal/domain"
	"github.com/clabops/backend-go/internal/observability"
	"github.com/clabops/backend-go/internal/pricing"
	"github.com/gin-gonic/gin"
)

// PricingHandler handles demand extraction and cost planning
type PricingHandler struct {
	svc     *coordinator.Service
	metrics *observability.Metrics
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(svc *coordinator.Service, metrics *observability.Metrics) *PricingHandler {
	return &PricingHandler{svc: svc, metrics: metrics}
}

// planRequest prices either a topology or an explicit demand
type planRequest struct {
	documentRequest
	TotalCPU         int  `json:"total_cpu"`
	TotalMemoryGB    int  `json:"total_memory_gb"`
	HighAvailability bool `json:"high_availability"`
	Discounted       bool `json:"discounted"`
}

func (r planRequest) demand(svc *coordinator.Service) (domain.ResourceDemand, error) {
	if r.TotalCPU > 0 && r.TotalMemoryGB > 0 {
		return domain.ResourceDemand{
			TotalCPU:      r.TotalCPU,
			TotalMemoryGB: r.TotalMemoryGB,
		}, nil
	}
	doc, err := r.load()
	if err != nil {
		return domain.ResourceDemand{}, err
	}
	return svc.ExtractDemand(doc), nil
}

// Demand returns the aggregate resource footprint of a topology
func (h *PricingHandler) Demand(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		h.metrics.RecordAnalysis("extract_demand", "error")
		return
	}

	demand := h.svc.ExtractDemand(doc)
	h.metrics.RecordAnalysis("extract_demand", "success")
	c.JSON(http.StatusOK, gin.H{
		"topology_name":   doc.DisplayName(),
		"node_count":      len(demand.Nodes),
		"total_cpu":       demand.TotalCPU,
		"total_memory_gb": demand.TotalMemoryGB,
		"nodes":           demand.Nodes,
	})
}

// Optimize selects the cheapest fitting machine offer under a policy
func (h *PricingHandler) Optimize(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordAnalysis("optimize", "error")
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	demand, err := req.demand(h.svc)
	if err != nil {
		h.metrics.RecordAnalysis("optimize", "error")
		respondLoadError(c, err)
		return
	}

	policy := domain.PlanPolicy{
		HighAvailability: req.HighAvailability,
		Discounted:       req.Discounted,
	}
	plan, err := h.svc.Optimize(demand, policy)
	if err != nil {
		h.respondPlanError(c, "optimize", err)
		return
	}

	h.metrics.RecordAnalysis("optimize", "success")
	h.metrics.RecordPlan(plan.MonthlyUSD)
	c.JSON(http.StatusOK, plan)
}

// Compare ranks the deployment variants for a demand
func (h *PricingHandler) Compare(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordAnalysis("compare", "error")
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	demand, err := req.demand(h.svc)
	if err != nil {
		h.metrics.RecordAnalysis("compare", "error")
		respondLoadError(c, err)
		return
	}

	plans, err := h.svc.Compare(demand)
	if err != nil {
		h.respondPlanError(c, "compare", err)
		return
	}

	h.metrics.RecordAnalysis("compare", "success")
	c.JSON(http.StatusOK, gin.H{
		"total_cpu":       demand.TotalCPU,
		"total_memory_gb": demand.TotalMemoryGB,
		"region":          h.svc.Catalog().Region(),
		"plans":           plans,
	})
}

// Catalog returns the full price table
func (h *PricingHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"region":            h.svc.Catalog().Region(),
		"spot_price_factor": pricing.SpotPriceFactor,
		"offers":            h.svc.Catalog().Offers(),
	})
}

// CustomOffer prices a custom machine shape from query parameters
func (h *PricingHandler) CustomOffer(c *gin.Context) {
	cpu, err := strconv.Atoi(c.DefaultQuery("cpu", "0"))
	if err != nil || cpu < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "query parameter 'cpu' must be a positive integer"})
		return
	}
	memoryGB, err := strconv.Atoi(c.DefaultQuery("memory_gb", "0"))
	if err != nil || memoryGB < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "query parameter 'memory_gb' must be a positive integer"})
		return
	}

	c.JSON(http.StatusOK, h.svc.Catalog().CustomOffer(cpu, memoryGB))
}

func (h *PricingHandler) respondPlanError(c *gin.Context, operation string, err error) {
	var capErr *domain.CapacityError
	if errors.As(err, &capErr) {
		h.metrics.RecordAnalysis(operation, "capacity_error")
		h.metrics.RecordCapacityError()
		respondCapacityError(c, capErr)
		return
	}
	h.metrics.RecordAnalysis(operation, "error")
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
