package review

import (
	"context"
	"time"

	"go-tours/internal/database"
	"go-tours/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, rev *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	List(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Review, error)
}

type MongoRepository struct {
	Collection *mongo.Collection
}

func NewRepository(db *database.MongodbDB) Repository {
	return &MongoRepository{Collection: db.DB.Collection("reviews")}
}

func (r *MongoRepository) Create(ctx context.Context, rev *models.Review) (*models.Review, error) {
	rev.ID = primitive.NewObjectID()
	rev.CreatedAt = time.Now()

	if _, err := r.Collection.InsertOne(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var rev models.Review
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rev)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *MongoRepository) List(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Review, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
