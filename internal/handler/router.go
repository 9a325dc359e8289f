package handler

import (
	"net/http"

	"github.com/clabops/backend-go/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all API routes
func SetupRouter(
	topo *TopologyHandler,
	pricing *PricingHandler,
	analysis *AnalysisHandler,
	metrics *observability.Metrics,
	corsOrigin string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware(corsOrigin))
	r.Use(PrometheusMiddleware(metrics))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Topology endpoints
	topoGroup := r.Group("/api/topology")
	{
		topoGroup.POST("/validate", topo.Validate)
		topoGroup.POST("/repair", topo.Repair)
		topoGroup.POST("/analyze", topo.Analyze)
	}

	// Pricing endpoints
	pricingGroup := r.Group("/api/pricing")
	{
		pricingGroup.POST("/demand", pricing.Demand)
		pricingGroup.POST("/optimize", pricing.Optimize)
		pricingGroup.POST("/compare", pricing.Compare)
		pricingGroup.GET("/catalog", pricing.Catalog)
		pricingGroup.GET("/custom", pricing.CustomOffer)
	}

	// End-to-end analysis endpoints
	analysisGroup := r.Group("/api/analysis")
	{
		analysisGroup.POST("/complete", analysis.Complete)
		analysisGroup.GET("/capabilities", analysis.Capabilities)
		analysisGroup.GET("/history", analysis.History)
	}

	return r
}
