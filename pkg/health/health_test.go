package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthyCheck(ctx context.Context) error { return nil }

func failingCheck(msg string) Checker {
	return func(ctx context.Context) error { return fmt.Errorf("%s", msg) }
}

// readyz runs the readiness handler and decodes its JSON body.
func readyz(t *testing.T, h *Handler) (int, Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	h.ReadinessHandler().ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestLivenessHandler_AlwaysUp(t *testing.T) {
	h := NewHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	h.LivenessHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUp, resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReadiness_AllChecksPass(t *testing.T) {
	h := NewHandler()
	h.Register("postgres", healthyCheck)
	h.Register("kafka", healthyCheck)

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Status)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
	assert.Equal(t, StatusUp, resp.Checks["kafka"].Status)
}

func TestReadiness_NoChecksRegistered(t *testing.T) {
	code, resp := readyz(t, NewHandler())

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Status)
}

func TestReadiness_ReRegisterReplacesCheck(t *testing.T) {
	h := NewHandler()
	h.Register("postgres", failingCheck("stale checker"))
	h.Register("postgres", healthyCheck)

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
}

func TestReadiness_RegisterDefaultsToCritical(t *testing.T) {
	h := NewHandler()
	h.Register("postgres", failingCheck("connection refused"))

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusDown, resp.Status)
	assert.True(t, resp.Checks["postgres"].Critical)
	assert.Equal(t, "connection refused", resp.Checks["postgres"].Error)
}

func TestReadiness_CriticalDownIs503(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", failingCheck("connection refused"))
	h.RegisterNonCritical("kafka", healthyCheck)

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusDown, resp.Status)
	assert.Equal(t, StatusDown, resp.Checks["postgres"].Status)
	assert.True(t, resp.Checks["postgres"].Critical)
}

func TestReadiness_NonCriticalDownIsDegraded200(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", healthyCheck)
	h.RegisterNonCritical("kafka", failingCheck("broker unreachable"))

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
	assert.Equal(t, StatusDown, resp.Checks["kafka"].Status)
	assert.False(t, resp.Checks["kafka"].Critical)
	assert.Equal(t, "broker unreachable", resp.Checks["kafka"].Error)
}

func TestReadiness_MultipleNonCriticalDownStillDegraded(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", healthyCheck)
	h.RegisterNonCritical("kafka", failingCheck("kafka down"))
	h.RegisterNonCritical("cache", failingCheck("cache down"))

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusDegraded, resp.Status)
}

func TestReadiness_CriticalDownWinsOverDegraded(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", failingCheck("db down"))
	h.RegisterNonCritical("kafka", failingCheck("broker down"))

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusDown, resp.Status)
}

func TestReadiness_EverythingUpIncludingNonCritical(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", healthyCheck)
	h.RegisterNonCritical("kafka", healthyCheck)

	code, resp := readyz(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Status)
}
