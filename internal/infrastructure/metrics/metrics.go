// Package metrics exposes Prometheus collectors for the chat server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	ActiveConnections prometheus.Gauge
	ActiveRooms       *prometheus.GaugeVec
	MessagesTotal     *prometheus.CounterVec
	GamesStarted      *prometheus.CounterVec
	GamesFinished     *prometheus.CounterVec
	SnakeTicksTotal   prometheus.Counter
	UploadsTotal      prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chatroom_active_connections",
			Help: "Number of currently open websocket connections.",
		}),
		ActiveRooms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chatroom_active_rooms",
			Help: "Number of live rooms by kind.",
		}, []string{"kind"}),
		MessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatroom_messages_total",
			Help: "Chat messages accepted, by kind.",
		}, []string{"kind"}),
		GamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatroom_games_started_total",
			Help: "Games started, by game kind.",
		}, []string{"game"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatroom_games_finished_total",
			Help: "Games completed, by game kind.",
		}, []string{"game"}),
		SnakeTicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatroom_snake_ticks_total",
			Help: "Snake simulation ticks processed.",
		}),
		UploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatroom_uploads_total",
			Help: "Files accepted by the upload endpoint.",
		}),
	}

	reg.MustRegister(
		m.ActiveConnections,
		m.ActiveRooms,
		m.MessagesTotal,
		m.GamesStarted,
		m.GamesFinished,
		m.SnakeTicksTotal,
		m.UploadsTotal,
	)

	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
