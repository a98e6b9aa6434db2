// Package metrics exposes prometheus metrics about clock sessions
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all clock server metrics.
type Registry struct {
	SessionsActive  prometheus.Gauge
	SessionsCreated *prometheus.CounterVec
	Switches        *prometheus.CounterVec
	GamesOver       *prometheus.CounterVec
	Connections     prometheus.Gauge
}

// Get returns the global metrics registry, registered with the default
// prometheus registerer on first use.
func Get() *Registry {
	once.Do(func() {
		registry = New(prometheus.DefaultRegisterer)
	})
	return registry
}

// New creates a registry whose metrics are registered with reg.
func New(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	r := &Registry{}

	r.SessionsActive = factory.NewGauge(prometheus.GaugeOpts{
		Name: "chessclock_sessions_active",
		Help: "Number of clock sessions currently held by the server",
	})

	r.SessionsCreated = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "chessclock_sessions_created_total",
		Help: "Total clock sessions created",
	}, []string{"type"})

	r.Switches = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "chessclock_switches_total",
		Help: "Total player switches",
	}, []string{"type"})

	r.GamesOver = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "chessclock_games_over_total",
		Help: "Total games ended by a player running out of time",
	}, []string{"type"})

	r.Connections = factory.NewGauge(prometheus.GaugeOpts{
		Name: "chessclock_connections_active",
		Help: "Number of open websocket connections",
	})

	return r
}

// SessionCreated records a new session of the given time control type.
func (r *Registry) SessionCreated(controlType string) {
	r.SessionsCreated.WithLabelValues(controlType).Inc()
	r.SessionsActive.Inc()
}

// SessionEnded records a session leaving the server.
func (r *Registry) SessionEnded() {
	r.SessionsActive.Dec()
}

func (r *Registry) RecordSwitch(controlType string) {
	r.Switches.WithLabelValues(controlType).Inc()
}

func (r *Registry) RecordGameOver(controlType string) {
	r.GamesOver.WithLabelValues(controlType).Inc()
}
