package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/apiintegration/taskhub/internal/api/middleware"
	"github.com/apiintegration/taskhub/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Authenticate middleware.
// Its absence means the route was registered without the gate, which is
// treated as an unauthenticated call rather than a panic.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
