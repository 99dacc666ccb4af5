package domain

import "time"

// Priority ranks a todo. Stored and rendered by name.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Todo is a single task record.
type Todo struct {
	ID             int64     `json:"id" bson:"_id"`
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description" bson:"description"`
	Status         bool      `json:"status" bson:"status"`
	CreatedDate    time.Time `json:"created_date" bson:"created_date"`
	DueDate        time.Time `json:"due_date" bson:"due_date"`
	Priority       Priority  `json:"priority" bson:"priority"`
	CreatedBy      int64     `json:"created_by,omitempty" bson:"created_by,omitempty"`
	IdempotencyKey string    `json:"-" bson:"idempotency_key,omitempty"`
}
