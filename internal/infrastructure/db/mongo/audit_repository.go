package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/apiintegration/taskhub/internal/core/domain"
)

const collectionAudit = "audit_events"

// AuditRepository appends entries to the audit_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, entry)
	return err
}
