package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSimulation(t *testing.T) {
	before := testutil.ToFloat64(simulations.WithLabelValues(OutcomeNotFound))
	RecordSimulation(OutcomeNotFound, 0)
	assert.Equal(t, before+1, testutil.ToFloat64(simulations.WithLabelValues(OutcomeNotFound)))
}

func TestRecordGateDecision(t *testing.T) {
	allowed := testutil.ToFloat64(gateDecisions.WithLabelValues("allowed"))
	rejected := testutil.ToFloat64(gateDecisions.WithLabelValues("rejected"))

	RecordGateDecision(true)
	RecordGateDecision(false)
	RecordGateDecision(false)

	assert.Equal(t, allowed+1, testutil.ToFloat64(gateDecisions.WithLabelValues("allowed")))
	assert.Equal(t, rejected+2, testutil.ToFloat64(gateDecisions.WithLabelValues("rejected")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveStoreQuery("sqlite", time.Now(), nil)
	ObserveStoreQuery("sqlite", time.Now(), errors.New("boom"))
	RecordSimulation(OutcomeSimulated, 2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "economap_store_query_duration_seconds"))
	assert.True(t, strings.Contains(body, "economap_propagation_simulations_total"))
	assert.True(t, strings.Contains(body, "economap_propagation_affected_rows"))
}
