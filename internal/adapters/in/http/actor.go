package http

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Actor is the caller identified by the token the external auth service issued.
type Actor struct {
	ID   kernel.UUID
	Name string
	Role kernel.Role
}

// Party returns the actor as an order participant.
func (a Actor) Party() order.Party {
	return order.Party{ID: a.ID, Name: a.Name}
}

// Claims are the token fields the service relies on; the subject is the account id.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseActor verifies an HS256 token and extracts the actor.
func ParseActor(token string, secret []byte) (Actor, error) {
	if len(secret) == 0 {
		return Actor{}, errors.New("jwt secret is empty")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Actor{}, errors.Join(ErrInvalidToken, err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Actor{}, errors.Join(ErrInvalidToken, err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return Actor{}, errors.Join(ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Name) == "" {
		return Actor{}, errors.Join(ErrInvalidToken, errors.New("name claim is empty"))
	}

	return Actor{ID: id, Name: claims.Name, Role: role}, nil
}

// ActorMiddleware rejects requests without a valid bearer token with 401.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return unauthorized(c, ErrMissingToken)
			}

			actor, err := ParseActor(strings.TrimSpace(token), secret)
			if err != nil {
				return unauthorized(c, err)
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireRole answers 403 unless the actor has one of roles.
func RequireRole(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(roles, actorOf(c).Role) {
				return c.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: "operation not allowed for this role",
				})
			}
			return next(c)
		}
	}
}

func actorOf(c echo.Context) Actor {
	actor, _ := c.Get(actorKey).(Actor)
	return actor
}

func unauthorized(c echo.Context, err error) error {
	return c.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Message: err.Error(),
	})
}
