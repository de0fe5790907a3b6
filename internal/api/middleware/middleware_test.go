package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

const wallet = "0x1234567890AbcdEF1234567890aBcdef12345678"

func init() {
	gin.SetMode(gin.TestMode)
}

type mockParser struct {
	mock.Mock
}

func (m *mockParser) ParseToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// fakeRedis mimics the rate limit script for a single key
type fakeRedis struct {
	counts map[string]int64
	err    error
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) (interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	limit := int64(args[0].(int))
	ttl := args[1].(int64)
	f.counts[keys[0]]++
	current := f.counts[keys[0]]
	remaining := limit - current
	if remaining < 0 {
		remaining = 0
	}
	return []interface{}{current, remaining, ttl}, nil
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTraceMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(TraceMiddleware(logging.NewNoOpLogger()))
	router.GET("/ping", func(c *gin.Context) {
		assert.NotNil(t, GetLogger(c))
		c.String(http.StatusOK, GetTraceID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceIDHeader, "trace-abc")
	w := serve(router, req)
	assert.Equal(t, "trace-abc", w.Header().Get(TraceIDHeader))
	assert.Equal(t, "trace-abc", w.Body.String())

	w = serve(router, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(TraceIDHeader))
	assert.Equal(t, w.Header().Get(TraceIDHeader), w.Body.String())
}

func TestGetLogger_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}

func TestWalletAuth(t *testing.T) {
	parser := &mockParser{}
	parser.On("ParseToken", "good").Return(wallet, nil)
	parser.On("ParseToken", "bad").Return("", errors.New("token is expired"))

	newRouter := func(disabled bool) *gin.Engine {
		router := gin.New()
		router.Use(WalletAuth(parser, disabled))
		router.GET("/me", func(c *gin.Context) {
			caller, _ := GetCaller(c)
			c.String(http.StatusOK, caller)
		})
		return router
	}

	tests := []struct {
		name       string
		disabled   bool
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantBody: wallet},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "auth disabled", disabled: true, wantStatus: http.StatusOK, wantBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(newRouter(tt.disabled), req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), "Unauthorized")
			}
		})
	}
}

func TestRateLimiter_Limit(t *testing.T) {
	limiter, err := NewRateLimiter(&fakeRedis{counts: map[string]int64{}}, logging.NewNoOpLogger())
	assert.NoError(t, err)

	router := gin.New()
	router.GET("/faucet", limiter.Limit("faucet", func(c *gin.Context) string { return c.Query("to") }, 2, time.Minute),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/faucet?to=alice", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(router, httptest.NewRequest(http.MethodGet, "/faucet?to=alice", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// another recipient has its own budget
	w = serve(router, httptest.NewRequest(http.MethodGet, "/faucet?to=bob", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	limiter, err := NewRateLimiter(&fakeRedis{counts: map[string]int64{}, err: errors.New("connection refused")}, logging.NewNoOpLogger())
	assert.NoError(t, err)

	var nilLimiter *RateLimiter
	for _, rl := range []*RateLimiter{limiter, nilLimiter} {
		router := gin.New()
		router.GET("/faucet", rl.Limit("faucet", func(c *gin.Context) string { return "alice" }, 1, time.Minute),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/faucet", nil)).Code)
		}
	}

	_, err = NewRateLimiter(nil, logging.NewNoOpLogger())
	assert.Error(t, err)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware(logging.NewNoOpLogger()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	router := gin.New()
	router.Use(TimeoutMiddleware(time.Second))
	router.GET("/slow", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(router, httptest.NewRequest(http.MethodGet, "/slow", nil)).Code)
}
