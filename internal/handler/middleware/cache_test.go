//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainuser "reservas-backend/internal/domain/user"
	"reservas-backend/internal/handler/middleware"
	"reservas-backend/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(store *gocache.Cache, hits *int) *gin.Engine {
		router := gin.New()
		cached := router.Group("", middleware.Cache(store, time.Minute))
		cached.GET("/salas", func(c *gin.Context) {
			*hits++
			c.JSON(http.StatusOK, gin.H{"hits": *hits})
		})
		cached.GET("/missing", func(c *gin.Context) {
			*hits++
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found"}})
		})
		cached.POST("/salas", func(c *gin.Context) {
			*hits++
			c.JSON(http.StatusCreated, gin.H{"hits": *hits})
		})
		return router
	}

	perform := func(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("a repeated GET is served from the cache", func(t *testing.T) {
		hits := 0
		store := gocache.New(time.Minute, time.Minute)
		router := newRouter(store, &hits)

		first := perform(router, http.MethodGet, "/salas")
		second := perform(router, http.MethodGet, "/salas")

		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, 1, hits, "second request must not reach the handler")
	})

	t.Run("different query strings are cached separately", func(t *testing.T) {
		hits := 0
		store := gocache.New(time.Minute, time.Minute)
		router := newRouter(store, &hits)

		perform(router, http.MethodGet, "/salas?tipo=reuniao")
		perform(router, http.MethodGet, "/salas?tipo=auditorio")

		assert.Equal(t, 2, hits)
	})

	t.Run("flushing the store drops cached entries", func(t *testing.T) {
		hits := 0
		store := gocache.New(time.Minute, time.Minute)
		router := newRouter(store, &hits)

		perform(router, http.MethodGet, "/salas")
		store.Flush()
		perform(router, http.MethodGet, "/salas")

		assert.Equal(t, 2, hits)
	})

	t.Run("non-2xx responses are not cached", func(t *testing.T) {
		hits := 0
		store := gocache.New(time.Minute, time.Minute)
		router := newRouter(store, &hits)

		perform(router, http.MethodGet, "/missing")
		perform(router, http.MethodGet, "/missing")

		assert.Equal(t, 2, hits)
	})

	t.Run("entries are scoped by access level", func(t *testing.T) {
		hits := 0
		store := gocache.New(time.Minute, time.Minute)
		router := gin.New()
		// Resolve the caller's level from a header so the test can act
		// as admin and user against the same URI.
		router.Use(func(c *gin.Context) {
			c.Set("auth_actor", shared.Actor{
				ID:          uuid.New(),
				Username:    c.GetHeader("X-Test-User"),
				AccessLevel: domainuser.AccessLevel(c.GetHeader("X-Test-Level")),
			})
		})
		router.GET("/salas", middleware.Cache(store, time.Minute), func(c *gin.Context) {
			hits++
			actor, _ := middleware.GetActor(c)
			c.JSON(http.StatusOK, gin.H{"level": actor.AccessLevel})
		})

		performAs := func(level string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/salas?incluir_inativas=true", nil)
			req.Header.Set("X-Test-User", level)
			req.Header.Set("X-Test-Level", level)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		admin := performAs("admin")
		user := performAs("user")

		assert.Equal(t, 2, hits, "the user request must not be served the admin's entry")
		assert.Contains(t, admin.Body.String(), `"admin"`)
		assert.Contains(t, user.Body.String(), `"user"`)

		// Same level, same URI: served from the cache
		performAs("user")
		assert.Equal(t, 2, hits)
	})

	t.Run("writes bypass the cache", func(t *testing.T) {
		hits := 0
		store := gocache.New(time.Minute, time.Minute)
		router := newRouter(store, &hits)

		perform(router, http.MethodPost, "/salas")
		perform(router, http.MethodPost, "/salas")

		assert.Equal(t, 2, hits)
	})
}
