package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/service"
)

func newGate(t *testing.T) (*service.Gate, *service.TokenService) {
	t.Helper()
	tokens, err := service.NewTokenService("secret")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return service.NewGate(tokens, zerolog.Nop()), tokens
}

func newContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	gate, tokens := newGate(t)
	signed, err := tokens.Issue(&domain.User{ID: 9, Username: "alice", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	c, rec := newContext("Bearer " + signed)

	called := false
	handler := Authenticate(gate)(func(c echo.Context) error {
		called = true
		id := IdentityFrom(c)
		if id == nil || id.UserID != 9 || id.Username != "alice" || id.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	gate, _ := newGate(t)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrUnauthenticated},
		{"wrong scheme", "Token abc", domain.ErrUnauthenticated},
		{"scheme only", "Bearer", domain.ErrUnauthenticated},
		{"garbage token", "Bearer not.a.jwt", domain.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(tt.header)
			handler := Authenticate(gate)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if err := handler(c); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	gate, _ := newGate(t)

	c, rec := newContext("")
	SetIdentity(c, &domain.Identity{UserID: 2, Role: domain.RoleUser})

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	if err := Require(gate, domain.PolicyAdmin)(next)(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := Require(gate, domain.PolicyUser)(next)(c); err != nil {
		t.Fatalf("expected USER to pass user policy, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	anon, _ := newContext("")
	if err := Require(gate, domain.PolicyAuthenticated)(next)(anon); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without identity, got %v", err)
	}
}

func TestRequestLogger_OmitsCredentials(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestLogger(log))
	e.POST("/login", func(c echo.Context) error {
		SetIdentity(c, &domain.Identity{UserID: 4})
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"hunter2"}`))
	req.Header.Set(echo.HeaderAuthorization, "Bearer sekrit-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := buf.String()
	if !strings.Contains(out, `"path":"/login"`) || !strings.Contains(out, `"user_id":4`) {
		t.Fatalf("expected request fields in log, got %s", out)
	}
	if strings.Contains(out, "hunter2") || strings.Contains(out, "sekrit-token") {
		t.Fatalf("credentials leaked into log: %s", out)
	}
}
