package ports

import (
	"context"

	"github.com/apiintegration/taskhub/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
type TodoRepository interface {
	// Create assigns the numeric id and inserts the record.
	Create(ctx context.Context, t *domain.Todo) error
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Todo, error)
	// List returns one page ordered by id together with the total count.
	List(ctx context.Context, page, limit int) ([]*domain.Todo, int64, error)
	// Delete returns domain.ErrTodoNotFound when nothing was removed.
	Delete(ctx context.Context, id int64) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
