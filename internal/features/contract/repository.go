package contract

import (
	"context"
	"time"

	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *Contract) error
	FindByID(ctx context.Context, id string) (*Contract, error)
	List(ctx context.Context, limit, offset int64) ([]Contract, error)
	// ApplyTransition updates workflow fields with a conditional write on
	// {_id, revision}. Returns false (and no error) when the revision did not
	// match, i.e. someone else transitioned the contract first.
	ApplyTransition(ctx context.Context, id string, revision int64, fields map[string]interface{}) (bool, error)
	ListPendingReviewOlderThan(ctx context.Context, cutoff time.Time) ([]Contract, error)
}

type ContractRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewContractRepository(mongodb *database.MongodbDB) ContractRepository {
	return &ContractRepositoryImpl{
		Collection: mongodb.DB.Collection(TableName),
	}
}

func (r *ContractRepositoryImpl) Create(ctx context.Context, contract *Contract) error {
	if contract.ID.IsZero() {
		contract.ID = primitive.NewObjectID()
	}
	contract.Status = StatusDraft
	contract.Revision = 1
	contract.CreatedAt = time.Now()
	contract.UpdatedAt = time.Now()

	_, err := r.Collection.InsertOne(ctx, contract)
	return err
}

func (r *ContractRepositoryImpl) FindByID(ctx context.Context, id string) (*Contract, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var contract Contract
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&contract)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) List(ctx context.Context, limit, offset int64) ([]Contract, error) {
	opts := options.Find().SetLimit(limit).SetSkip(offset).SetSort(bson.M{"updated_at": -1})

	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contracts []Contract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepositoryImpl) ApplyTransition(ctx context.Context, id string, revision int64, fields map[string]interface{}) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	update := bson.M{
		"$set": set,
		"$inc": bson.M{"revision": 1},
	}

	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid, "revision": revision}, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *ContractRepositoryImpl) ListPendingReviewOlderThan(ctx context.Context, cutoff time.Time) ([]Contract, error) {
	filter := bson.M{
		"status":     StatusPendingReview,
		"updated_at": bson.M{"$lt": cutoff},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contracts []Contract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}
