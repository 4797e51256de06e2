//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"reservas-backend/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(r rate.Limit, b int) *gin.Engine {
		router := gin.New()
		router.POST("/login", middleware.RateLimiter(r, b), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return router
	}

	perform := func(router *gin.Engine, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":51000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("requests beyond the burst get 429", func(t *testing.T) {
		router := newRouter(rate.Limit(0.001), 2)

		assert.Equal(t, http.StatusOK, perform(router, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, perform(router, "10.0.0.1").Code)

		w := perform(router, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Too many requests")
	})

	t.Run("limits are tracked per client IP", func(t *testing.T) {
		router := newRouter(rate.Limit(0.001), 1)

		assert.Equal(t, http.StatusOK, perform(router, "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, perform(router, "10.0.0.1").Code)

		// A different client still has its full burst
		assert.Equal(t, http.StatusOK, perform(router, "10.0.0.2").Code)
	})
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("returns the same limiter for one IP", func(t *testing.T) {
		limiter := middleware.NewIPRateLimiter(rate.Limit(1), 5)
		assert.Same(t, limiter.GetLimiter("10.0.0.1"), limiter.GetLimiter("10.0.0.1"))
	})

	t.Run("different IPs get independent limiters", func(t *testing.T) {
		limiter := middleware.NewIPRateLimiter(rate.Limit(1), 5)
		assert.NotSame(t, limiter.GetLimiter("10.0.0.1"), limiter.GetLimiter("10.0.0.2"))
	})
}
