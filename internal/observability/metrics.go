package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messagely_http_requests_total",
			Help: "Total number of HTTP requests processed by the messagely service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "messagely_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messagely_logins_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)
	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messagely_registrations_total",
			Help: "Registration attempts by result.",
		},
		[]string{"result"},
	)
	messagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "messagely_messages_sent_total",
			Help: "Total number of messages stored.",
		},
	)
	messagesReadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "messagely_messages_read_total",
			Help: "Total number of read markings.",
		},
	)
	eventPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "messagely_event_publish_errors_total",
			Help: "Total number of domain event publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		loginsTotal,
		registrationsTotal,
		messagesSentTotal,
		messagesReadTotal,
		eventPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func ObserveLogin(ok bool) {
	loginsTotal.WithLabelValues(result(ok)).Inc()
}

func ObserveRegistration(ok bool) {
	registrationsTotal.WithLabelValues(result(ok)).Inc()
}

func IncMessageSent() {
	messagesSentTotal.Inc()
}

func IncMessageRead() {
	messagesReadTotal.Inc()
}

func IncEventPublishError() {
	eventPublishErrorsTotal.Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
