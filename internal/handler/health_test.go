package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := do(newTestRouter(deps{}), http.MethodGet, "/healthz", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

func TestGetRoot_welcomes(t *testing.T) {
	rec := do(newTestRouter(deps{}), http.MethodGet, "/", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the AI Trip Planner API"}`, rec.Body.String())
}

func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	rec := do(newTestRouter(deps{}), http.MethodGet, "/openapi.yaml", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/plan_trip:")
}

func TestGetMetrics_exposesCollectors(t *testing.T) {
	rec := do(newTestRouter(deps{}), http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tripplanner_")
}

func TestUnknownRoute_returnsJSON404(t *testing.T) {
	rec := do(newTestRouter(deps{}), http.MethodGet, "/nope", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}
