// Package metrics holds the Prometheus counters for the ledger and combat services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Status label values for combat commands
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusInvalid  = "invalid"
	StatusConflict = "conflict"
	StatusError    = "error"
)

// Outcome label values for narration candidates
const (
	OutcomeAccepted   = "accepted"
	OutcomeCoerced    = "coerced"
	OutcomeDowngraded = "downgraded"
	OutcomeFailed     = "failed"
)

// Metrics groups the service counters. A nil *Metrics records nothing.
type Metrics struct {
	EventsAppended      *prometheus.CounterVec
	UnknownTypes        *prometheus.CounterVec
	CombatCommands      *prometheus.CounterVec
	NarrationCandidates *prometheus.CounterVec
}

// New creates the counters and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsAppended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_events_appended_total",
				Help: "World events appended to the ledger by type and source",
			},
			[]string{"type", "source"},
		),
		UnknownTypes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_unknown_types_total",
				Help: "Dispatched events whose type was coerced to NOTE",
			},
			[]string{"source"},
		),
		CombatCommands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "combat_commands_total",
				Help: "Combat commands by command and status",
			},
			[]string{"command", "status"},
		),
		NarrationCandidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "narration_candidates_total",
				Help: "Narration candidates by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.EventsAppended, m.UnknownTypes, m.CombatCommands, m.NarrationCandidates)

	return m
}

// EventAppended counts one ledger append
func (m *Metrics) EventAppended(eventType, source string) {
	if m == nil {
		return
	}
	m.EventsAppended.WithLabelValues(eventType, source).Inc()
}

// UnknownType counts one coerced event type
func (m *Metrics) UnknownType(source string) {
	if m == nil {
		return
	}
	m.UnknownTypes.WithLabelValues(source).Inc()
}

// CombatCommand counts one combat command
func (m *Metrics) CombatCommand(command, status string) {
	if m == nil {
		return
	}
	m.CombatCommands.WithLabelValues(command, status).Inc()
}

// NarrationCandidate counts one narration candidate
func (m *Metrics) NarrationCandidate(outcome string) {
	if m == nil {
		return
	}
	m.NarrationCandidates.WithLabelValues(outcome).Inc()
}
