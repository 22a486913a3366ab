package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/reactive/observability"
)

// Telemetry returns middleware that traces each request and records
// request metrics. Health-check paths are skipped. A nil metrics
// disables metric recording but spans are still created.
func Telemetry(serviceName string, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := observability.StartSpan(c.Request.Context(),
			observability.SpanHTTPRequest,
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		if metrics != nil {
			metrics.RecordRequestStart(ctx)
		}

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
		span.End()

		if metrics != nil {
			metrics.RecordRequestEnd(ctx, serviceName,
				c.Request.Method+" "+route,
				strconv.Itoa(status),
				time.Since(start),
			)
		}
	}
}
