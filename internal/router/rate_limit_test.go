package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":" Alice "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	assert.Equal(t, "alice|1.2.3.4", KeyByIPAndJSONField("username")(c))

	body, err := io.ReadAll(c.Request.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Alice", "request body should be restored after reading field")
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Contains(t, w.Body.String(), `"ok":true`)
	}
}

func TestRateLimitMiddlewareBlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rule := RateLimitRule{Prefix: "test:rate:login", WindowSeconds: 60, MaxRequests: 2, MessageKey: "error.login_too_many"}
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(client, rule, KeyByIPAndJSONField("username")), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})

	send := func(username string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"`+username+`"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, 0, decodeEnvelope(t, send("alice")).StatusCode)
	assert.Equal(t, 0, decodeEnvelope(t, send("alice")).StatusCode)

	blocked := send("alice")
	assert.Equal(t, 429, decodeEnvelope(t, blocked).StatusCode)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	// 不同用户名使用独立计数
	assert.Equal(t, 0, decodeEnvelope(t, send("bob")).StatusCode)

	mr.FastForward(61 * time.Second)
	assert.Equal(t, 0, decodeEnvelope(t, send("alice")).StatusCode)
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
