package ports

import (
	"context"

	"github.com/apiintegration/taskhub/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Role may be blank.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer mints signed bearer tokens for verified users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier checks a bearer token and returns the identity it asserts.
type TokenVerifier interface {
	Verify(raw string) (*domain.Identity, error)
}

// Authorizer is the gate protected routes pass through.
type Authorizer interface {
	Authenticate(raw string) (*domain.Identity, error)
	Authorize(id *domain.Identity, policy domain.Policy) error
}
