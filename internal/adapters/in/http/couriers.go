package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListCouriers handles GET /api/v1/couriers.
func (s *Server) ListCouriers(c echo.Context) error {
	var online bool
	if err := runtime.BindQueryParameter("form", true, false, "online", c.QueryParams(), &online); err != nil {
		return badRequest(c, err)
	}

	rows, err := s.handlers.ListCouriers.Handle(c.Request().Context(), queries.NewListCouriersQuery(online))
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Courier, 0, len(rows))
	for _, r := range rows {
		response = append(response, courierRowDTO(r))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers. The id is normally the courier's
// account id; a new one is generated when absent.
func (s *Server) CreateCourier(c echo.Context) error {
	var body NewCourierRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	id := kernel.NewUUID()
	if body.ID != nil {
		parsed, err := uuidFromDTO(*body.ID)
		if err != nil {
			return badRequest(c, err)
		}
		id = parsed
	}

	cmd, err := commands.NewCreateCourierCommand(id, body.Name)
	if err != nil {
		return badRequest(c, err)
	}

	created, err := s.handlers.CreateCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, courierDTO(created))
}

// UpdateCourierLocation handles PUT /api/v1/couriers/:id/location.
func (s *Server) UpdateCourierLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body Location
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	loc, err := kernel.NewLocation(body.Lat, body.Lng)
	if err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewUpdateCourierLocationCommand(id, loc)
	if err != nil {
		return badRequest(c, err)
	}

	updated, err := s.handlers.UpdateCourierLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, courierDTO(updated))
}

// SetCourierOnline handles PUT /api/v1/couriers/:id/online.
func (s *Server) SetCourierOnline(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body SetOnlineRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewSetCourierOnlineCommand(id, body.Online)
	if err != nil {
		return badRequest(c, err)
	}

	updated, err := s.handlers.SetCourierOnline.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, courierDTO(updated))
}

// GetCourierRoute handles GET /api/v1/couriers/:id/route.
func (s *Server) GetCourierRoute(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	query, err := queries.NewGetCourierRouteQuery(id, c.QueryParam("traffic"))
	if err != nil {
		return badRequest(c, err)
	}

	resp, err := s.handlers.GetCourierRoute.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, routeDTO(resp))
}

// ConfirmStop handles POST /api/v1/couriers/:id/route/confirm.
func (s *Server) ConfirmStop(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var body ConfirmStopRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewConfirmStopCommand(id, body.StopID)
	if err != nil {
		return badRequest(c, err)
	}

	o, err := s.handlers.ConfirmStop.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderDTO(o))
}

// ownCourierOnly lets a courier act only on their own record. Other roles pass.
func ownCourierOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor := actorOf(c)
		if actor.Role != kernel.RoleCourier {
			return next(c)
		}
		if id, err := kernel.UUIDFromString(c.Param("id")); err == nil && !id.IsEqual(actor.ID) {
			return c.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "couriers may only act on their own record",
			})
		}
		return next(c)
	}
}
