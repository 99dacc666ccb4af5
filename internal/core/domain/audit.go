package domain

import "time"

const (
	AuditTodoCreate = "todo.create"
	AuditTodoDelete = "todo.delete"
)

// AuditEntry records a permitted mutation and the identity that performed it.
type AuditEntry struct {
	Action    string    `bson:"action"`
	Resource  string    `bson:"resource"`
	UserID    int64     `bson:"user_id"`
	Username  string    `bson:"username"`
	Role      Role      `bson:"role"`
	RequestID string    `bson:"request_id,omitempty"`
	At        time.Time `bson:"at"`
}
