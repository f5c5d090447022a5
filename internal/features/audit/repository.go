package audit

import (
	"context"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditRepository is append-only: entries are inserted and queried, never
// updated or deleted.
type AuditRepository interface {
	Create(ctx context.Context, entry common_models.AuditEntry) error
	ListByRecord(ctx context.Context, table string, recordID string) ([]common_models.AuditEntry, error)
	FindApprovalForState(ctx context.Context, table string, recordID string, toState string) (*common_models.AuditEntry, error)
}

type AuditRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewAuditRepository(mongodb *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		Collection: mongodb.DB.Collection("workflow_audit"),
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, entry common_models.AuditEntry) error {
	_, err := r.Collection.InsertOne(ctx, entry)
	return err
}

func (r *AuditRepositoryImpl) ListByRecord(ctx context.Context, table string, recordID string) ([]common_models.AuditEntry, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": 1})

	cursor, err := r.Collection.Find(ctx, bson.M{"table": table, "record_id": recordID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []common_models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindApprovalForState returns the most recent approval that landed the record
// in toState. The approval stepper uses this to show who cleared a step and when.
func (r *AuditRepositoryImpl) FindApprovalForState(ctx context.Context, table string, recordID string, toState string) (*common_models.AuditEntry, error) {
	filter := bson.M{
		"table":     table,
		"record_id": recordID,
		"to_state":  toState,
		"action":    bson.M{"$in": []common_models.WorkflowAction{common_models.ActionApprove, common_models.ActionSign}},
	}
	opts := options.FindOne().SetSort(bson.M{"timestamp": -1})

	var entry common_models.AuditEntry
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
