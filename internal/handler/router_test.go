package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clabops/backend-go/internal/coordinator"
	"github.com/clabops/backend-go/internal/observability"
	"github.com/clabops/backend-go/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTopologyYAML = `name: lab1
topology:
  nodes:
    r1:
      kind: nokia_srlinux
      image: ghcr.io/nokia/srlinux
      type: default
    r2:
      kind: linux
      image: ghcr.io/hellt/network-multitool
      type: default
  links:
    - endpoints: ["r1:e1-1", "r2:eth1"]
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := observability.NewMetricsWith(prometheus.NewRegistry())
	svc := coordinator.NewService(pricing.NewDefaultCatalog(""))

	return SetupRouter(
		NewTopologyHandler(svc, metrics),
		NewPricingHandler(svc, metrics),
		NewAnalysisHandler(svc, nil, metrics),
		metrics,
		"http://localhost:5173",
	)
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	w := getPath(t, newTestRouter(t), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestValidateEndpoint(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/topology/validate", gin.H{"content": validTopologyYAML})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "lab1", body["topology_name"])
	assert.Equal(t, true, body["is_valid"])
}

func TestValidateEndpointInvalidDocument(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/topology/validate", gin.H{
		"content": "name: broken\ntopology:\n  links: []\n",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["is_valid"])
	assert.NotEmpty(t, body["errors"])
}

func TestValidateEndpointUnparseableYAML(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/topology/validate", gin.H{"content": "topology: [unclosed"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "inline", decodeBody(t, w)["source"])
}

func TestValidateEndpointMissingInput(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/topology/validate", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["detail"], "required")
}

func TestRepairEndpoint(t *testing.T) {
	broken := "name: lab1\ntopology:\n  nodes:\n    r1: {}\n"
	w := postJSON(t, newTestRouter(t), "/api/topology/repair", gin.H{"content": broken})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["is_valid"])
	// links section + kind + image + type on r1
	assert.Equal(t, float64(4), body["repair_count"])
	assert.Contains(t, body["topology_yaml"], "kind: linux")
}

func TestAnalyzeEndpoint(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/topology/analyze", gin.H{"content": validTopologyYAML})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["node_count"])
	assert.Equal(t, float64(1), body["link_count"])
}

func TestDemandEndpoint(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/pricing/demand", gin.H{"content": validTopologyYAML})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	// srlinux 2/4 + linux 1/2, plus per-node overhead
	assert.Equal(t, float64(5), body["total_cpu"])
	assert.Equal(t, float64(10), body["total_memory_gb"])
}

func TestOptimizeEndpointExplicitDemand(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/pricing/optimize", gin.H{
		"total_cpu":       16,
		"total_memory_gb": 32,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	offer := body["offer"].(map[string]any)
	assert.Equal(t, "n2-standard-16", offer["machine_type"])
	assert.InDelta(t, 520.92, body["total_monthly_cost"], 1e-9)
}

func TestOptimizeEndpointDiscounted(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/pricing/optimize", gin.H{
		"total_cpu":       16,
		"total_memory_gb": 32,
		"discounted":      true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "spot_standard", body["variant"])
	assert.InDelta(t, 156.28, body["total_monthly_cost"], 1e-9)
}

func TestOptimizeEndpointCapacityError(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/pricing/optimize", gin.H{
		"total_cpu":       500,
		"total_memory_gb": 64,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "cpu", body["dimension"])
	assert.Equal(t, float64(372), body["shortfall"])
}

func TestCompareEndpoint(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/pricing/compare", gin.H{
		"total_cpu":       8,
		"total_memory_gb": 16,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "us-east4", body["region"])
	assert.Len(t, body["plans"], 3)
}

func TestCatalogEndpoint(t *testing.T) {
	w := getPath(t, newTestRouter(t), "/api/pricing/catalog")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "us-east4", body["region"])
	assert.InDelta(t, 0.30, body["spot_price_factor"], 1e-9)
	assert.Len(t, body["offers"], 10)
}

func TestCustomOfferEndpoint(t *testing.T) {
	w := getPath(t, newTestRouter(t), "/api/pricing/custom?cpu=6&memory_gb=20")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "custom-6-20", body["machine_type"])
	assert.Equal(t, true, body["is_custom"])
}

func TestCustomOfferEndpointBadInput(t *testing.T) {
	for _, query := range []string{"", "?cpu=6", "?cpu=abc&memory_gb=20", "?cpu=6&memory_gb=-1"} {
		w := getPath(t, newTestRouter(t), "/api/pricing/custom"+query)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestCompleteEndpoint(t *testing.T) {
	w := postJSON(t, newTestRouter(t), "/api/analysis/complete", gin.H{"content": validTopologyYAML})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "", body["run_id"]) // history disabled
	assert.NotEmpty(t, body["commands"])

	analysis := body["analysis"].(map[string]any)
	assert.Equal(t, "lab1", analysis["topology_name"])
	plan := analysis["deployment_plan"].(map[string]any)
	assert.Equal(t, "on_demand_standard", plan["variant"])
}

func TestCapabilitiesEndpoint(t *testing.T) {
	w := getPath(t, newTestRouter(t), "/api/analysis/capabilities")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["capabilities"], 6)
}

func TestHistoryEndpointDisabled(t *testing.T) {
	w := getPath(t, newTestRouter(t), "/api/analysis/history")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/topology/validate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
