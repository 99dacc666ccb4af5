package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/apiintegration/taskhub/internal/core/domain"
)

func TestGate_Authenticate(t *testing.T) {
	now := fixedNow
	tokens := newTestTokens(t, &now)
	gate := NewGate(tokens, zerolog.Nop())

	token, _ := tokens.Issue(&domain.User{ID: 3, Username: "frank", Role: domain.RoleUser})

	id, err := gate.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if id.UserID != 3 || id.Role != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", id)
	}

	if _, err := gate.Authenticate(""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("empty token: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := gate.Authenticate("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("garbage: expected ErrInvalidToken, got %v", err)
	}

	now = fixedNow.Add(2 * time.Hour)
	if _, err := gate.Authenticate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expired: expected ErrTokenExpired, got %v", err)
	}
}

func TestGate_Authorize(t *testing.T) {
	gate := NewGate(nil, zerolog.Nop())
	admin := &domain.Identity{UserID: 1, Role: domain.RoleAdmin}
	user := &domain.Identity{UserID: 2, Role: domain.RoleUser}

	tests := []struct {
		name   string
		id     *domain.Identity
		policy domain.Policy
		want   error
	}{
		{"admin on admin route", admin, domain.PolicyAdmin, nil},
		{"user on admin route", user, domain.PolicyAdmin, domain.ErrForbidden},
		{"user on user route", user, domain.PolicyUser, nil},
		{"admin on user route", admin, domain.PolicyUser, nil},
		{"user on open route", user, domain.PolicyAuthenticated, nil},
		{"unknown role on user route", &domain.Identity{Role: "MANAGER"}, domain.PolicyUser, domain.ErrForbidden},
		{"no identity", nil, domain.PolicyAuthenticated, domain.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(tt.id, tt.policy)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
