package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/enhance"
)

type Metrics struct {
	registry         *prometheus.Registry
	promptsGenerated *prometheus.CounterVec
	authEvents       *prometheus.CounterVec
}

// New builds a private registry with the service counters and the Go
// runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		promptsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptforge",
			Name:      "prompts_generated_total",
			Help:      "Prompts rendered, by template category.",
		}, []string{"category"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptforge",
			Name:      "auth_events_total",
			Help:      "Session state changes, by event type.",
		}, []string{"event"}),
	}
	m.registry.MustRegister(
		m.promptsGenerated,
		m.authEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, c := range enhance.Categories() {
		m.promptsGenerated.WithLabelValues(string(c))
	}
	return m
}

func (m *Metrics) PromptGenerated(category enhance.Category) {
	m.promptsGenerated.WithLabelValues(string(category)).Inc()
}

// ObserveAuth is an auth.Broker subscriber.
func (m *Metrics) ObserveAuth(ev auth.Event) {
	m.authEvents.WithLabelValues(string(ev.Type)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
