package router

import (
	"github.com/blogicum/internal/observability"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const traceIDHeader = "X-Trace-ID"

// TracingMiddleware 为每个请求开启 server span，并把上下文写回 Request
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := observability.Tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("http.client_ip", c.ClientIP()),
				attribute.String("request.id", getRequestID(c)),
			),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.IsValid() {
			c.Header(traceIDHeader, sc.TraceID().String())
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if userID, ok := c.Get(userIDKey); ok {
			if id, ok := userID.(uint); ok {
				span.SetAttributes(attribute.Int64("user.id", int64(id)))
			}
		}
		if len(c.Errors) > 0 {
			span.SetStatus(codes.Error, c.Errors.String())
		} else if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
