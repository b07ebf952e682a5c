package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(perMin int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(NewRateLimiterStore(perMin)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doFrom(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware_BurstThenReject(t *testing.T) {
	r := newLimitedRouter(3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doFrom(r, "10.0.0.1"))

	// Other clients keep their own budget.
	assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.2"))
}

func TestNewRateLimiterStore_Default(t *testing.T) {
	assert.Equal(t, 100, NewRateLimiterStore(0).perMin)
}
