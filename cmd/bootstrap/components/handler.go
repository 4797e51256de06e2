package components

import (
	"reservas-backend/internal/handler"
	"reservas-backend/internal/handler/api"
	"reservas-backend/internal/handler/middleware"
	"reservas-backend/internal/pkg/config"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewRoomListCache,
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewRoomHandler,
		api.NewHealthHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRoomListCache(cfg config.Config) *gocache.Cache {
	return gocache.New(cfg.Cache.RoomListTTL, 2*cfg.Cache.RoomListTTL)
}

func NewHandlers(
	auth *api.AuthHandler,
	reservation *api.ReservationHandler,
	room *api.RoomHandler,
	health *api.HealthHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Reservation: reservation,
		Room:        room,
		Health:      health,
	}
}
