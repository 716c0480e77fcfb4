package tour

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

// Visibility scopes, threaded explicitly through every read.
var (
	// ScopeVisible excludes secret tours.
	ScopeVisible = bson.M{"secretTour": bson.M{"$ne": true}}
	// ScopeAll bypasses visibility scoping.
	ScopeAll = bson.M{}
)

type Repository interface {
	Create(ctx context.Context, t *models.Tour) (*models.Tour, error)
	FindByID(ctx context.Context, id string, scope bson.M) (*models.Tour, error)
	List(ctx context.Context, filter bson.M, opts *options.FindOptions, scope bson.M) ([]models.Tour, error)
	Update(ctx context.Context, id string, set bson.M, scope bson.M) (*models.Tour, error)
	Delete(ctx context.Context, id string, scope bson.M) error
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, scope bson.M) ([]bson.M, error)
	EnsureIndexes(ctx context.Context) error
}

type MongoRepository struct {
	Collection *mongo.Collection
}

func NewRepository(db *database.MongodbDB) Repository {
	return &MongoRepository{Collection: db.DB.Collection("tours")}
}

func scoped(filter, scope bson.M) bson.M {
	merged := bson.M{}
	for k, v := range filter {
		merged[k] = v
	}
	for k, v := range scope {
		merged[k] = v
	}
	return merged
}

func (r *MongoRepository) Create(ctx context.Context, t *models.Tour) (*models.Tour, error) {
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now()

	if _, err := r.Collection.InsertOne(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string, scope bson.M) (*models.Tour, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var t models.Tour
	err = r.Collection.FindOne(ctx, scoped(bson.M{"_id": objectID}, scope)).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MongoRepository) List(ctx context.Context, filter bson.M, opts *options.FindOptions, scope bson.M) ([]models.Tour, error) {
	cursor, err := r.Collection.Find(ctx, scoped(filter, scope), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tours []models.Tour
	if err = cursor.All(ctx, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M, scope bson.M) (*models.Tour, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Tour
	err = r.Collection.FindOneAndUpdate(ctx,
		scoped(bson.M{"_id": objectID}, scope),
		bson.M{"$set": set},
		opts,
	).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string, scope bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	res, err := r.Collection.DeleteOne(ctx, scoped(bson.M{"_id": objectID}, scope))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Aggregate prepends the visibility scope as the first $match stage so
// pipelines can never see documents their caller cannot.
func (r *MongoRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, scope bson.M) ([]bson.M, error) {
	if len(scope) > 0 {
		scopedStage := bson.D{{Key: "$match", Value: scope}}
		pipeline = append(mongo.Pipeline{scopedStage}, pipeline...)
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "slug", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}},
		},
	})
	return err
}
