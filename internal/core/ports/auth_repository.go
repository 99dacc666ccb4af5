package ports

import (
	"context"

	"github.com/apiintegration/taskhub/internal/core/domain"
)

// UserRepository is the credential store consumed by the auth service.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no record matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether any record shares either value.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Create assigns the numeric id and persists the record. A uniqueness
	// violation surfaces as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
