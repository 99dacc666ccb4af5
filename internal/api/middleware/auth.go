package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/ports"
)

const identityKey = "auth.identity"

// Authenticate validates the bearer token and stores the caller's identity on
// the context. Missing, malformed, invalid and expired tokens all stop the
// request with the matching domain error.
func Authenticate(gate ports.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			id, err := gate.Authenticate(raw)
			if err != nil {
				return err
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// Require admits the request only when the authenticated role satisfies policy.
func Require(gate ports.Authorizer, policy domain.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := gate.Authorize(IdentityFrom(c), policy); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// SetIdentity stores id on the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity set by Authenticate, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrUnauthenticated
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrUnauthenticated
	}
	return strings.TrimSpace(token), nil
}
