package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tvdberg/wijnproef/pkg/metrics"
)

// Metrics records a request count and latency histogram per path.
func Metrics(m *metrics.ServerMetrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.Requests.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.LatencyMS.WithLabelValues(r.URL.Path).Observe(float64(time.Since(start).Milliseconds()))
	})
}
