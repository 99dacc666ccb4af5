package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/apiintegration/taskhub/internal/core/domain"
)

const bearerRealm = `Bearer realm="taskhub"`

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to stable status codes, adds a WWW-Authenticate challenge to 401/403
// responses, and hides unexpected errors behind a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp, challenge := resolveError(err, log, c)
		if challenge != "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Code: codeForStatus(he.Code)}, ""
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error(), Code: "invalid_credentials"}, ""
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, errorResponse{Error: "user already exists", Code: "already_exists"}, ""
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidRole.Error(), Code: "invalid_role"}, ""
	case errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrPasswordTooLong.Error(), Code: "bad_request"}, ""
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "authentication required", Code: "unauthenticated"}, bearerRealm
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Error: "token expired", Code: "token_expired"},
			bearerRealm + `, error="invalid_token", error_description="token expired"`
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: "invalid token", Code: "invalid_token"},
			bearerRealm + `, error="invalid_token"`
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden", Code: "forbidden"},
			bearerRealm + `, error="insufficient_scope"`
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, errorResponse{Error: "todo not found", Code: "not_found"}, ""
	case errors.Is(err, domain.ErrIdempotencyConflict):
		return http.StatusConflict, errorResponse{Error: domain.ErrIdempotencyConflict.Error(), Code: "conflict"}, ""
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("upstream call failed")
		return http.StatusBadGateway, errorResponse{Error: "upstream service unavailable", Code: "upstream_unavailable"}, ""
	}

	// Unexpected error (including a missing signing key): log the real cause,
	// return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal"}, ""
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		if status >= 500 {
			return "internal"
		}
		return "error"
	}
}
