package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/ports"
	"github.com/apiintegration/taskhub/internal/pkg/metrics"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	// maxPage keeps (page-1)*limit well inside int64 for the store's skip.
	maxPage = math.MaxInt32
)

type TodoService struct {
	repo   ports.TodoRepository
	audit  ports.AuditSink
	logger zerolog.Logger
	now    func() time.Time
}

func NewTodoService(repo ports.TodoRepository, audit ports.AuditSink, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, audit: audit, logger: logger, now: time.Now}
}

// Create stores a new todo. If an idempotency key is provided and already seen,
// the previously created todo is returned without side effects.
func (s *TodoService) Create(ctx context.Context, in ports.CreateTodoInput) (*ports.CreateTodoResult, error) {
	if in.IdempotencyKey != "" {
		existing, err := s.findByKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.CreateTodoResult{Todo: existing, AlreadyExisted: true}, nil
		}
	}

	now := s.now().UTC()
	todo := &domain.Todo{
		Title:          in.Title,
		Description:    in.Description,
		Status:         in.Status,
		CreatedDate:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		DueDate:        in.DueDate.UTC(),
		Priority:       in.Priority,
		IdempotencyKey: in.IdempotencyKey,
	}
	if in.Actor != nil {
		todo.CreatedBy = in.Actor.UserID
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		if errors.Is(err, domain.ErrIdempotencyConflict) {
			// Lost the race to another request carrying the same key.
			existing, ferr := s.findByKey(ctx, in.IdempotencyKey)
			if ferr != nil {
				return nil, ferr
			}
			if existing != nil {
				return &ports.CreateTodoResult{Todo: existing, AlreadyExisted: true}, nil
			}
		}
		s.logger.Error().Err(err).Msg("failed to create todo")
		return nil, fmt.Errorf("create todo: %w", err)
	}

	metrics.TodosCreatedTotal.WithLabelValues(string(todo.Priority)).Inc()
	s.record(domain.AuditTodoCreate, todo.ID, in.Actor, in.RequestID)
	s.logger.Info().Int64("todo_id", todo.ID).Msg("todo created")

	return &ports.CreateTodoResult{Todo: todo}, nil
}

// findByKey returns nil, nil when no todo carries the key.
func (s *TodoService) findByKey(ctx context.Context, key string) (*domain.Todo, error) {
	existing, err := s.repo.FindByIdempotencyKey(ctx, key)
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		return nil, nil
	case err != nil:
		s.logger.Error().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
		return nil, fmt.Errorf("lookup idempotency key: %w", err)
	}
	s.logger.Info().Str("idempotency_key", key).Int64("todo_id", existing.ID).Msg("idempotent replay")
	return existing, nil
}

func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	return todo, nil
}

// List returns one page. Page is clamped to [1, maxPage] and limit to
// [1, maxPageLimit].
func (s *TodoService) List(ctx context.Context, page, limit int) (*ports.ListTodosResult, error) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if total == 0 {
		return nil, domain.ErrTodoNotFound
	}

	return &ports.ListTodosResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64, actor *domain.Identity, requestID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return err
		}
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	s.record(domain.AuditTodoDelete, id, actor, requestID)
	s.logger.Info().Int64("todo_id", id).Msg("todo deleted")
	return nil
}

func (s *TodoService) record(action string, todoID int64, actor *domain.Identity, requestID string) {
	if s.audit == nil || actor == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEntry{
		Action:    action,
		Resource:  "todo/" + strconv.FormatInt(todoID, 10),
		UserID:    actor.UserID,
		Username:  actor.Username,
		Role:      actor.Role,
		RequestID: requestID,
		At:        s.now().UTC(),
	})
}
