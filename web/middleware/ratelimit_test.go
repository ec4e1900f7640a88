package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobboard/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	logging "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loggerOnce sync.Once

func newLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/users/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func doLogin(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.RemoteAddr = "198.51.100.7:4242"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	loggerOnce.Do(func() { logger.InitLogger(logging.DEBUG) })
	srv := miniredis.RunT(t)

	limiter := NewRateLimiter(srv.Addr(), "", 2, time.Minute)
	require.NotNil(t, limiter)
	router := newLimitedRouter(limiter)

	first := doLogin(router)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := doLogin(router)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := doLogin(router)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Contains(t, third.Body.String(), "Too many requests")
}

func TestRateLimiterWindowResets(t *testing.T) {
	loggerOnce.Do(func() { logger.InitLogger(logging.DEBUG) })
	srv := miniredis.RunT(t)

	limiter := NewRateLimiter(srv.Addr(), "", 1, 50*time.Millisecond)
	router := newLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, doLogin(router).Code)
	assert.Equal(t, http.StatusTooManyRequests, doLogin(router).Code)

	// The next window carries a fresh counter key.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doLogin(router).Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	loggerOnce.Do(func() { logger.InitLogger(logging.DEBUG) })
	srv := miniredis.RunT(t)
	limiter := NewRateLimiter(srv.Addr(), "", 1, time.Minute)
	router := newLimitedRouter(limiter)
	srv.Close()

	// An unreachable redis must not take the endpoint down.
	assert.Equal(t, http.StatusOK, doLogin(router).Code)
	assert.Equal(t, http.StatusOK, doLogin(router).Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewRateLimiter("", "", 5, time.Minute))
	assert.Nil(t, NewRateLimiter("localhost:6379", "", 0, time.Minute))

	var limiter *RateLimiter
	router := newLimitedRouter(limiter)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doLogin(router).Code)
	}
}
