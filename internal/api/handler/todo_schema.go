package handler

import "time"

type createTodoRequest struct {
	Title       string    `json:"title"       validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Status      bool      `json:"status"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	Priority    string    `json:"priority"    validate:"required,oneof=Low Medium High"`
}

type todoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      bool      `json:"status"`
	CreatedDate time.Time `json:"created_date"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `json:"priority"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listTodosResponse struct {
	Data       []todoResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
