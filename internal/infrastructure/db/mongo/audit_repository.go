package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentgate/jobboard/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends audit entries to the audit_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup indexes used when reviewing the trail:
// by actor, and by resource, both newest first.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("actor_recent"),
		},
		{
			Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("resource_recent"),
		},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	doc := bson.M{
		"actor_id":    e.ActorID,
		"action":      string(e.Action),
		"resource":    e.Resource,
		"resource_id": e.ResourceID,
		"occurred_at": e.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if len(e.Details) > 0 {
		doc["details"] = e.Details
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
