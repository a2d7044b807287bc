package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionFactory opens a live route feed for one courier.
type SessionFactory interface {
	NewCourierSession(courierID kernel.UUID, traffic string, coords <-chan kernel.Location) (*session.CourierSession, error)
}

// StreamCourierRoute handles GET /api/v1/couriers/:id/route/stream. Every recomputed
// route is sent as a server-sent event until the client disconnects.
func (s *Server) StreamCourierRoute(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	if s.handlers.Sessions == nil {
		return c.JSON(http.StatusNotImplemented, Error{Code: http.StatusNotImplemented, Message: "route streaming is disabled"})
	}

	sess, err := s.handlers.Sessions.NewCourierSession(id, c.QueryParam("traffic"), nil)
	if err != nil {
		return badRequest(c, err)
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for resp := range sess.Routes() {
		payload, marshalErr := json.Marshal(routeDTO(resp))
		if marshalErr != nil {
			s.logger.Error("failed to encode route", zap.Error(marshalErr))
			continue
		}
		if _, err = fmt.Fprintf(res, "event: route\ndata: %s\n\n", payload); err != nil {
			break
		}
		res.Flush()
	}

	cancel()
	<-done
	return nil
}
