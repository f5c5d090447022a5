package permission

import (
	"context"
	"fmt"
	"time"

	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OverrideRepository interface {
	FindByUserAndResource(ctx context.Context, userID string, resource string) (*Override, error)
	FindByUser(ctx context.Context, userID string) ([]Override, error)
	Upsert(ctx context.Context, override *Override) error
	Delete(ctx context.Context, id string) error
}

type OverrideRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOverrideRepository(mongodb *database.MongodbDB) OverrideRepository {
	return &OverrideRepositoryImpl{
		Collection: mongodb.DB.Collection("permission_overrides"),
	}
}

func (r *OverrideRepositoryImpl) FindByUserAndResource(ctx context.Context, userID string, resource string) (*Override, error) {
	filter := bson.M{"user_id": userID, "resource": resource}

	var override Override
	err := r.Collection.FindOne(ctx, filter).Decode(&override)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

func (r *OverrideRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]Override, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var overrides []Override
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *OverrideRepositoryImpl) Upsert(ctx context.Context, override *Override) error {
	if override.ID.IsZero() {
		override.ID = primitive.NewObjectID()
		override.CreatedAt = time.Now()
	}
	override.UpdatedAt = time.Now()

	filter := bson.M{"user_id": override.UserID, "resource": override.Resource}
	update := bson.M{
		"$set": bson.M{
			"actions":    override.Actions,
			"updated_at": override.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        override.ID,
			"user_id":    override.UserID,
			"resource":   override.Resource,
			"created_at": override.CreatedAt,
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *OverrideRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("permission override not found")
	}
	return nil
}
