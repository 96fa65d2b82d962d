package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockroom_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	CheckoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_asset_checkouts_total",
		Help: "Successful asset checkouts.",
	})

	CheckinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_asset_checkins_total",
		Help: "Successful asset checkins.",
	})

	AssignmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_resource_assignments_total",
		Help: "Successful pooled resource assignments.",
	})

	ReturnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_resource_returns_total",
		Help: "Successful pooled resource returns.",
	})

	ActivitiesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_activities_recorded_total",
		Help: "Audit activity entries appended, by action and item type.",
	}, []string{"action", "item_type"})
)

func PrometheusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			method := c.Request().Method
			path := c.Path()
			httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
