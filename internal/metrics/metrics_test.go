package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/tabletop-ledger/internal/metrics"
)

func TestMetrics_Record(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.EventAppended("NOTE", "narration")
	m.EventAppended("NOTE", "narration")
	m.UnknownType("narration")
	m.CombatCommand("advance_turn", metrics.StatusOK)
	m.NarrationCandidate(metrics.OutcomeCoerced)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsAppended.WithLabelValues("NOTE", "narration")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnknownTypes.WithLabelValues("narration")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CombatCommands.WithLabelValues("advance_turn", metrics.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NarrationCandidates.WithLabelValues(metrics.OutcomeCoerced)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.EventAppended("NOTE", "gm")
		m.UnknownType("gm")
		m.CombatCommand("start", metrics.StatusOK)
		m.NarrationCandidate(metrics.OutcomeAccepted)
	})
}

func TestServer_Handler(t *testing.T) {
	srv := metrics.NewServer("127.0.0.1:0")
	srv.Metrics().CombatCommand("start", metrics.StatusOK)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "combat_commands_total")

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
