package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestTracingMiddlewarePropagatesSpanContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	shutdown, err := observability.InitTracing(config.TracingConfig{
		Enabled:     true,
		Exporter:    "stdout",
		SampleRatio: 1,
	}, "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		_, _ = observability.InitTracing(config.TracingConfig{}, "test")
	})

	var handlerTraceID string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(TracingMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		handlerTraceID = trace.SpanContextFromContext(c.Request.Context()).TraceID().String()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotEmpty(t, w.Header().Get(traceIDHeader))
	assert.Equal(t, w.Header().Get(traceIDHeader), handlerTraceID)
}

func TestTracingMiddlewareNoopWhenDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(TracingMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(traceIDHeader))
}
