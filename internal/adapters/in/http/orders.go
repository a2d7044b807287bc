package http

import (
	"math"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateOrder handles POST /api/v1/orders. The caller is the client.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrderRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	pickup, dropoff, err := waypoints(body)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actorOf(c).Party(), pickup, dropoff, body.Description)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, orderDTO(o))
}

// CreateDirectOrder handles POST /api/v1/orders/direct. The calling dispatcher becomes
// the courier.
func (s *Server) CreateDirectOrder(c echo.Context) error {
	var body NewDirectOrderRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	pickup, dropoff, err := waypoints(body.NewOrderRequest)
	if err != nil {
		return badRequest(c, err)
	}
	clientID, err := uuidFromDTO(body.Client.ID)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCreateDirectOrderCommand(
		kernel.NewUUID(),
		order.Party{ID: clientID, Name: body.Client.Name},
		actorOf(c).Party(),
		pickup,
		dropoff,
		body.Description,
	)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.CreateDirectOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, orderDTO(o))
}

// ListOrders handles GET /api/v1/orders. Clients only ever see their own orders and
// couriers only the ones assigned to them.
func (s *Server) ListOrders(c echo.Context) error {
	var (
		rawStatus *string
		limit     int
		offset    int
	)
	params := c.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &rawStatus); err != nil {
		return badRequest(c, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		return badRequest(c, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", params, &offset); err != nil {
		return badRequest(c, err)
	}
	courierID, err := optionalQueryID(c, "courierId")
	if err != nil {
		return badRequest(c, err)
	}
	clientID, err := optionalQueryID(c, "clientId")
	if err != nil {
		return badRequest(c, err)
	}

	var status *order.Status
	if rawStatus != nil {
		st, parseErr := order.ParseStatus(*rawStatus)
		if parseErr != nil {
			return badRequest(c, parseErr)
		}
		status = &st
	}

	actor := actorOf(c)
	switch actor.Role {
	case kernel.RoleClient:
		clientID = &actor.ID
	case kernel.RoleCourier:
		courierID = &actor.ID
	}

	query, err := queries.NewListOrdersQuery(status, courierID, clientID, limit, offset)
	if err != nil {
		return badRequest(c, err)
	}

	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ordersDTO(orders))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	if !canSee(actorOf(c), o) {
		return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: "order not found"})
	}
	return c.JSON(http.StatusOK, orderDTO(o))
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetOrderPrice handles PUT /api/v1/orders/:id/price.
func (s *Server) SetOrderPrice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body SetPriceRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewSetOrderPriceCommand(id, body.Price)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.SetOrderPrice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderDTO(o))
}

// AssignCourier handles PUT /api/v1/orders/:id/courier. Without a courierId the
// nearest online courier is chosen.
func (s *Server) AssignCourier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body AssignCourierRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	var courierID *kernel.UUID
	if body.CourierID != nil {
		cid, convErr := uuidFromDTO(*body.CourierID)
		if convErr != nil {
			return badRequest(c, convErr)
		}
		courierID = &cid
	}

	cmd, err := commands.NewAssignCourierCommand(&id, courierID)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.AssignCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderDTO(o))
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status. A courier may only move
// orders assigned to them.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body UpdateStatusRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return badRequest(c, err)
	}

	var acting *kernel.UUID
	if actor := actorOf(c); actor.Role == kernel.RoleCourier {
		acting = &actor.ID
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, status, body.Note, acting)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderDTO(o))
}

// PostChatMessage handles POST /api/v1/orders/:id/messages.
func (s *Server) PostChatMessage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body PostMessageRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	actor := actorOf(c)
	cmd, err := commands.NewPostChatMessageCommand(kernel.NewUUID(), id, actor.Party(), actor.Role, body.Content)
	if err != nil {
		return badRequest(c, err)
	}

	msg, err := s.handlers.PostChatMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, chatMessageDTO(msg))
}

// RateOrder handles PUT /api/v1/orders/:id/rating.
func (s *Server) RateOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body RateOrderRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewRateOrderCommand(id, actorOf(c).ID, body.Rating, body.Feedback)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.RateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderDTO(o))
}

// SettleOrders handles POST /api/v1/settlements.
func (s *Server) SettleOrders(c echo.Context) error {
	var body SettleRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	party, err := commands.ParseSettlementParty(body.Party)
	if err != nil {
		return badRequest(c, err)
	}
	ids := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, convErr := uuidFromDTO(raw)
		if convErr != nil {
			return badRequest(c, convErr)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewSettleOrdersCommand(ids, party)
	if err != nil {
		return badRequest(c, err)
	}

	orders, err := s.handlers.SettleOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ordersDTO(orders))
}

// GetDelayedOrders handles GET /api/v1/orders/delayed.
func (s *Server) GetDelayedOrders(c echo.Context) error {
	var minutes *int
	if err := runtime.BindQueryParameter("form", true, false, "thresholdMinutes", c.QueryParams(), &minutes); err != nil {
		return badRequest(c, err)
	}

	var threshold time.Duration
	if minutes != nil {
		if *minutes < 1 {
			return badRequest(c, errs.NewValueIsOutOfRangeError("thresholdMinutes", *minutes, 1, math.MaxInt))
		}
		threshold = time.Duration(*minutes) * time.Minute
	}

	query := queries.NewGetDelayedOrdersQuery(threshold)
	orders, err := s.handlers.GetDelayedOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ordersDTO(orders))
}

func waypoints(body NewOrderRequest) (order.Waypoint, order.Waypoint, error) {
	pickup, err := body.Pickup.toDomain()
	if err != nil {
		return order.Waypoint{}, order.Waypoint{}, err
	}
	dropoff, err := body.Dropoff.toDomain()
	if err != nil {
		return order.Waypoint{}, order.Waypoint{}, err
	}
	return pickup, dropoff, nil
}

func canSee(actor Actor, o *order.Order) bool {
	switch actor.Role {
	case kernel.RoleClient:
		return o.Client().ID.IsEqual(actor.ID)
	case kernel.RoleCourier:
		return o.IsAssignedTo(actor.ID)
	default:
		return true
	}
}
