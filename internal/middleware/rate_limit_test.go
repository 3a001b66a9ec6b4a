package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"hubb-assist/internal/middleware"
)

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/login", middleware.RateLimitByIP(rate.Limit(1), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	asUser := func(userID uint) gin.HandlerFunc {
		return func(c *gin.Context) {
			if userID != 0 {
				c.Set("user_id", userID)
			}
			c.Next()
		}
	}

	t.Run("keyed per user", func(t *testing.T) {
		r := gin.New()
		limit := middleware.RateLimitByUser(rate.Limit(1), 1)
		r.GET("/me", asUser(42), limit, func(c *gin.Context) { c.Status(http.StatusOK) })

		first := httptest.NewRecorder()
		r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/me", nil))
		second := httptest.NewRecorder()
		r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("anonymous requests fall through", func(t *testing.T) {
		r := gin.New()
		limit := middleware.RateLimitByUser(rate.Limit(1), 1)
		r.GET("/me", asUser(0), limit, func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
