package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"cardiopulse/internal/infrastructure"
)

// HTTPMetrics records request count, duration and in-flight gauge for
// every request, labelled by method, route pattern and status class.
func HTTPMetrics(metrics *infrastructure.RequestMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metrics == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			start := time.Now()

			metrics.ActiveRequests.Add(ctx, 1)
			defer metrics.ActiveRequests.Add(ctx, -1)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// Route pattern rather than raw path keeps cardinality bounded
			pattern := r.URL.Path
			if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}

			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("route", pattern),
				attribute.Int("status", ww.Status()),
			)

			metrics.RequestCount.Add(ctx, 1, attrs)
			metrics.RequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		})
	}
}
