package http

import (
	"context"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// Handler is the shape shared by every command and query handler.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f HandlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) { return f(ctx, in) }

type OrderDeleter interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	// Commands
	CreateOrder           Handler[commands.CreateOrderCommand, *order.Order]
	CreateDirectOrder     Handler[commands.CreateDirectOrderCommand, *order.Order]
	SetOrderPrice         Handler[commands.SetOrderPriceCommand, *order.Order]
	AssignCourier         Handler[commands.AssignCourierCommand, *order.Order]
	UpdateOrderStatus     Handler[commands.UpdateOrderStatusCommand, *order.Order]
	PostChatMessage       Handler[commands.PostChatMessageCommand, order.ChatMessage]
	RateOrder             Handler[commands.RateOrderCommand, *order.Order]
	SettleOrders          Handler[commands.SettleOrdersCommand, []*order.Order]
	DeleteOrder           OrderDeleter
	CreateCourier         Handler[commands.CreateCourierCommand, *courier.Courier]
	UpdateCourierLocation Handler[commands.UpdateCourierLocationCommand, *courier.Courier]
	SetCourierOnline      Handler[commands.SetCourierOnlineCommand, *courier.Courier]
	ConfirmStop           Handler[commands.ConfirmStopCommand, *order.Order]

	// Queries
	GetOrder         Handler[queries.GetOrderQuery, *order.Order]
	ListOrders       Handler[queries.ListOrdersQuery, []*order.Order]
	GetDelayedOrders Handler[queries.GetDelayedOrdersQuery, []*order.Order]
	ListCouriers     Handler[queries.ListCouriersQuery, []queries.ListCouriersQueryResponse]
	GetCourierRoute  Handler[queries.GetCourierRouteQuery, queries.GetCourierRouteQueryResponse]

	// Sessions backs the route stream; nil disables it.
	Sessions SessionFactory
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server translates HTTP requests into use-case calls.
type Server struct {
	handlers Handlers
	checks   map[string]HealthCheck
	logger   *zap.Logger
}

func NewServer(handlers Handlers, checks map[string]HealthCheck, log *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		checks:   checks,
		logger:   logger.Component(log, "http"),
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(c echo.Context) error {
	status := map[string]string{}
	code := http.StatusOK
	for name, check := range s.checks {
		if err := check(c.Request().Context()); err != nil {
			status[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}
	return c.JSON(code, status)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, err
	}
	return uuidFromDTO(id)
}

func optionalQueryID(c echo.Context, name string) (*kernel.UUID, error) {
	var raw *openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	id, err := uuidFromDTO(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
