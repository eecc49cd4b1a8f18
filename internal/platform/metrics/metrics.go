// Package metrics exposes Prometheus collectors for answer generation.
package metrics

import (
	"strconv"

	"github.com/phrazzld/scry-assist/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records Answer outcomes and implements generation.Observer.
type Metrics struct {
	answersTotal *prometheus.CounterVec
	attempts     prometheus.Histogram
	commands     *prometheus.CounterVec
}

// Ensure Metrics implements generation.Observer interface
var _ generation.Observer = (*Metrics)(nil)

// New creates the collectors and registers them on reg.
// It panics if registration fails, as prometheus.MustRegister does.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		answersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scry_assist_answers_total",
				Help: "Total number of answer generations by terminal outcome.",
			},
			[]string{"outcome"},
		),
		attempts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scry_assist_answer_attempts",
				Help:    "Requests sent to the generative backend per answer.",
				Buckets: []float64{1, 2, 3, 5, 8},
			},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scry_assist_commands_total",
				Help: "Host commands received, by command name and whether it was handled.",
			},
			[]string{"command", "handled"},
		),
	}
	reg.MustRegister(m.answersTotal, m.attempts, m.commands)
	return m
}

// ObserveAnswer implements generation.Observer.
func (m *Metrics) ObserveAnswer(kind generation.OutcomeKind, attempts int) {
	m.answersTotal.WithLabelValues(string(kind)).Inc()
	m.attempts.Observe(float64(attempts))
}

// UnknownCommand is the command label recorded for every unhandled command.
const UnknownCommand = "unknown"

// ObserveCommand counts a host command and how it was handled. The name of an
// unhandled command comes from the client, so it is recorded as
// UnknownCommand to keep the label set bounded.
func (m *Metrics) ObserveCommand(command string, handled bool) {
	if !handled {
		command = UnknownCommand
	}
	m.commands.WithLabelValues(command, strconv.FormatBool(handled)).Inc()
}
