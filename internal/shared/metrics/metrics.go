package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lunchvote",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchvote",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lunchvote",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"method", "route"})

	// MenusCreated counts persisted menus.
	MenusCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lunchvote",
		Name:      "menus_created_total",
		Help:      "Menus persisted.",
	})

	// VotesCast counts persisted votes.
	VotesCast = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lunchvote",
		Name:      "votes_cast_total",
		Help:      "Votes persisted.",
	})

	// Conflicts counts uniqueness violations by kind (menu, vote, user).
	Conflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchvote",
		Name:      "uniqueness_conflicts_total",
		Help:      "Writes rejected because a uniqueness rule was already satisfied.",
	}, []string{"kind"})

	// EventsPublished counts realtime events by topic and outcome.
	EventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchvote",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Domain events handed to the publisher.",
	}, []string{"topic", "outcome"})

	// WebsocketClients tracks connected notification clients.
	WebsocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lunchvote",
		Subsystem: "ws",
		Name:      "clients",
		Help:      "Connected websocket clients.",
	})
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		MenusCreated,
		VotesCast,
		Conflicts,
		EventsPublished,
		WebsocketClients,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency keyed by the matched route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
