package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	"reservas-backend/internal/handler/api"
	"reservas-backend/internal/handler/middleware"
	"reservas-backend/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Reservation *api.ReservationHandler
	Room        *api.RoomHandler
	Health      *api.HealthHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	roomListCache *cache.Cache,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, handlers, authMiddleware, roomListCache)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	roomListCache *cache.Cache,
) {
	engine.GET("/health", handlers.Health.Check)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	loginLimiter := middleware.RateLimiter(rate.Limit(cfg.RateLimit.LoginRPS), cfg.RateLimit.LoginBurst)
	listCache := middleware.Cache(roomListCache, cfg.Cache.RoomListTTL)

	auth := engine.Group("/auth")
	{
		addRoutes(auth, []route{
			{Method: http.MethodPost, Path: "/login", Handler: handlers.Auth.Login, Mw: []gin.HandlerFunc{loginLimiter}},
			{Method: http.MethodPost, Path: "/register", Handler: handlers.Auth.Register},
			{Method: http.MethodPost, Path: "/verify", Handler: handlers.Auth.Verify},
		})

		authRequired := auth.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		addRoutes(authRequired, []route{
			{Method: http.MethodGet, Path: "/me", Handler: handlers.Auth.Me},
		})
	}

	reservations := engine.Group("/reservas")
	reservations.Use(authMiddleware.RequireAuth())
	{
		addRoutes(reservations, []route{
			{Method: http.MethodGet, Path: "", Handler: handlers.Reservation.List},
			{Method: http.MethodPost, Path: "", Handler: handlers.Reservation.Create},
			{Method: http.MethodGet, Path: "/disponibilidade", Handler: handlers.Reservation.CheckAvailability},
			{Method: http.MethodGet, Path: "/:id", Handler: handlers.Reservation.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: handlers.Reservation.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: handlers.Reservation.Cancel},
		})
	}

	rooms := engine.Group("/salas")
	rooms.Use(authMiddleware.RequireAuth())
	{
		addRoutes(rooms, []route{
			{Method: http.MethodGet, Path: "", Handler: handlers.Room.List, Mw: []gin.HandlerFunc{listCache}},
			{Method: http.MethodGet, Path: "/tipos", Handler: handlers.Room.ListTypes},
			{Method: http.MethodGet, Path: "/:id", Handler: handlers.Room.Get},
		})

		adminOnly := rooms.Group("")
		adminOnly.Use(authMiddleware.RequireAdmin())
		addRoutes(adminOnly, []route{
			{Method: http.MethodPost, Path: "", Handler: handlers.Room.Create},
			{Method: http.MethodPut, Path: "/:id", Handler: handlers.Room.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: handlers.Room.Delete},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
