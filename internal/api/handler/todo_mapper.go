package handler

import (
	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createTodoRequest, actor *domain.Identity, idempotencyKey, requestID string) ports.CreateTodoInput {
	return ports.CreateTodoInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		DueDate:        req.DueDate,
		Priority:       domain.Priority(req.Priority),
		IdempotencyKey: idempotencyKey,
		Actor:          actor,
		RequestID:      requestID,
	}
}

// --- Service result → HTTP response ---

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedDate: t.CreatedDate.UTC(),
		DueDate:     t.DueDate.UTC(),
		Priority:    string(t.Priority),
	}
}

func toListResponse(r *ports.ListTodosResult) listTodosResponse {
	items := make([]todoResponse, len(r.Items))
	for i, t := range r.Items {
		items[i] = toTodoResponse(t)
	}
	return listTodosResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
