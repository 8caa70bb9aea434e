package middleware

import (
	"net/http"
	"strconv"

	"hospital-management/pkg/metrics"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request and records the HTTP metrics
func RequestLogger(log *logrus.Logger, collector *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)

			collector.InFlightGauge.Inc()
			m := httpsnoop.CaptureMetrics(next, w, r)
			collector.InFlightGauge.Dec()

			collector.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(m.Code)).Inc()
			collector.RequestDuration.WithLabelValues(r.Method, route).Observe(m.Duration.Seconds())

			log.WithFields(logrus.Fields{
				"method":      r.Method,
				"route":       route,
				"status":      m.Code,
				"bytes":       m.Written,
				"duration_ms": m.Duration.Milliseconds(),
				"remote_addr": r.RemoteAddr,
			}).Info("HTTP request")
		})
	}
}

// routeTemplate keeps metric labels bounded by using the matched route, not the raw path
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
