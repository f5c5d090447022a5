package plan

import (
	"context"
	"time"

	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *BusinessPlan) error
	FindByID(ctx context.Context, id string) (*BusinessPlan, error)
	FindActiveByContract(ctx context.Context, contractID string) (*BusinessPlan, error)
	ListVersions(ctx context.Context, contractID string) ([]BusinessPlan, error)
	// UpdateStatus writes the new status conditionally on the current one.
	// Returns false when the plan already left fromStatus (concurrent caller).
	UpdateStatus(ctx context.Context, id string, fromStatus Status, fields map[string]interface{}) (bool, error)
	// UpdateInPlace rewrites financials/notes on an editable row.
	UpdateInPlace(ctx context.Context, id string, fields map[string]interface{}) error
	// InsertVersion atomically deactivates the old row and inserts the new
	// version in one transaction, so a failure never half-creates a plan.
	InsertVersion(ctx context.Context, oldID primitive.ObjectID, newPlan *BusinessPlan) error
}

type PlanRepositoryImpl struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

func NewPlanRepository(mongodb *database.MongodbDB) PlanRepository {
	return &PlanRepositoryImpl{
		Client:     mongodb.Client,
		Collection: mongodb.DB.Collection(TableName),
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *BusinessPlan) error {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	plan.Version = 1
	plan.IsActive = true
	plan.Status = StatusDraft
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	_, err := r.Collection.InsertOne(ctx, plan)
	return err
}

func (r *PlanRepositoryImpl) FindByID(ctx context.Context, id string) (*BusinessPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var plan BusinessPlan
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindActiveByContract(ctx context.Context, contractID string) (*BusinessPlan, error) {
	var plan BusinessPlan
	err := r.Collection.FindOne(ctx, bson.M{"contract_id": contractID, "is_active": true}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) ListVersions(ctx context.Context, contractID string) ([]BusinessPlan, error) {
	opts := options.Find().SetSort(bson.M{"version": 1})

	cursor, err := r.Collection.Find(ctx, bson.M{"contract_id": contractID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []BusinessPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepositoryImpl) UpdateStatus(ctx context.Context, id string, fromStatus Status, fields map[string]interface{}) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid, "status": fromStatus}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *PlanRepositoryImpl) UpdateInPlace(ctx context.Context, id string, fields map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	return err
}

func (r *PlanRepositoryImpl) InsertVersion(ctx context.Context, oldID primitive.ObjectID, newPlan *BusinessPlan) error {
	session, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		_, err := r.Collection.UpdateOne(sessCtx,
			bson.M{"_id": oldID},
			bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}})
		if err != nil {
			return nil, err
		}

		_, err = r.Collection.InsertOne(sessCtx, newPlan)
		if err != nil {
			return nil, err
		}

		return nil, nil
	})

	return err
}
