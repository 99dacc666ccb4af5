package ports

import (
	"context"
	"time"

	"github.com/apiintegration/taskhub/internal/core/domain"
)

// CreateTodoInput carries the data needed to create a todo.
type CreateTodoInput struct {
	Title          string
	Description    string
	Status         bool
	DueDate        time.Time
	Priority       domain.Priority
	IdempotencyKey string
	Actor          *domain.Identity
	RequestID      string
}

// CreateTodoResult wraps the stored todo.
type CreateTodoResult struct {
	Todo *domain.Todo
	// AlreadyExisted is true when the idempotency key matched an existing todo.
	AlreadyExisted bool
}

// ListTodosResult is one page of todos.
type ListTodosResult struct {
	Items      []*domain.Todo
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TodoService defines use-case operations for todos.
type TodoService interface {
	Create(ctx context.Context, in CreateTodoInput) (*CreateTodoResult, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	List(ctx context.Context, page, limit int) (*ListTodosResult, error)
	Delete(ctx context.Context, id int64, actor *domain.Identity, requestID string) error
}

// AuditSink accepts audit entries without blocking the request path.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}
