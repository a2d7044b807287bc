package http

import (
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// Register mounts /health, the docs and the API. Every API route needs a valid token;
// validator may be nil to skip request validation against the OpenAPI document.
func (s *Server) Register(e *echo.Echo, validator echo.MiddlewareFunc, jwtSecret []byte) {
	e.GET("/health", s.GetHealth)
	RegisterDocs(e)

	api := e.Group(APIPrefix, ActorMiddleware(jwtSecret))
	if validator != nil {
		api.Use(validator)
	}

	admin := RequireRole(kernel.RoleAdmin)
	client := RequireRole(kernel.RoleClient)
	staff := RequireRole(kernel.RoleAdmin, kernel.RoleCourier)

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder, client)
	api.POST("/orders/direct", s.CreateDirectOrder, admin)
	api.GET("/orders/delayed", s.GetDelayedOrders, admin)
	api.GET("/orders/:id", s.GetOrder)
	api.DELETE("/orders/:id", s.DeleteOrder, admin)
	api.PUT("/orders/:id/price", s.SetOrderPrice, admin)
	api.PUT("/orders/:id/courier", s.AssignCourier, admin)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus, staff)
	api.POST("/orders/:id/messages", s.PostChatMessage)
	api.PUT("/orders/:id/rating", s.RateOrder, client)
	api.POST("/settlements", s.SettleOrders, admin)

	api.GET("/couriers", s.ListCouriers, admin)
	api.POST("/couriers", s.CreateCourier, admin)
	api.PUT("/couriers/:id/location", s.UpdateCourierLocation, staff, ownCourierOnly)
	api.PUT("/couriers/:id/online", s.SetCourierOnline, staff, ownCourierOnly)
	api.GET("/couriers/:id/route", s.GetCourierRoute, staff, ownCourierOnly)
	api.GET("/couriers/:id/route/stream", s.StreamCourierRoute, staff, ownCourierOnly)
	api.POST("/couriers/:id/route/confirm", s.ConfirmStop, RequireRole(kernel.RoleCourier), ownCourierOnly)
}
