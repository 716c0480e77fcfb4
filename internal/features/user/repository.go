package user

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

// Visibility scopes. Every read takes one explicitly; there is no implicit
// query interceptor.
var (
	// ScopeActive excludes soft-deleted users.
	ScopeActive = bson.M{"active": bson.M{"$ne": false}}
	// ScopeAll bypasses visibility scoping. Reserved for auth internals
	// (login needs the hash, reset looks up by token) and admin deletion.
	ScopeAll = bson.M{}
)

type Repository interface {
	Create(ctx context.Context, usr *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string, scope bson.M) (*models.User, error)
	FindByEmail(ctx context.Context, email string, scope bson.M) (*models.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	List(ctx context.Context, filter bson.M, opts *options.FindOptions, scope bson.M) ([]models.User, error)
	UpdateFields(ctx context.Context, id string, set bson.M, scope bson.M) (*models.User, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string, changedAt time.Time) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	LoadActive(ctx context.Context, id string) (*models.User, error)
	EnsureIndexes(ctx context.Context) error
}

type MongoRepository struct {
	Collection *mongo.Collection
}

func NewRepository(db *database.MongodbDB) Repository {
	return &MongoRepository{Collection: db.DB.Collection("users")}
}

// scoped overlays the visibility scope onto a filter; the scope always wins
// so clients cannot widen it through query parameters.
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

func (r *MongoRepository) Create(ctx context.Context, usr *models.User) (*models.User, error) {
	usr.ID = primitive.NewObjectID()
	usr.Active = true
	usr.CreatedAt = time.Now()
	usr.UpdatedAt = usr.CreatedAt
	if usr.Role == "" {
		usr.Role = models.RoleUser
	}

	if _, err := r.Collection.InsertOne(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string, scope bson.M) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var usr models.User
	err = r.Collection.FindOne(ctx, scoped(bson.M{"_id": objectID}, scope)).Decode(&usr)
	if err != nil {
		return nil, err
	}
	return &usr, nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string, scope bson.M) (*models.User, error) {
	var usr models.User
	err := r.Collection.FindOne(ctx, scoped(bson.M{"email": email}, scope)).Decode(&usr)
	if err != nil {
		return nil, err
	}
	return &usr, nil
}

func (r *MongoRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	filter := bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": bson.M{"$gt": now},
	}

	var usr models.User
	if err := r.Collection.FindOne(ctx, filter).Decode(&usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

func (r *MongoRepository) List(ctx context.Context, filter bson.M, opts *options.FindOptions, scope bson.M) ([]models.User, error) {
	cursor, err := r.Collection.Find(ctx, scoped(filter, scope), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoRepository) UpdateFields(ctx context.Context, id string, set bson.M, scope bson.M) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var usr models.User
	err = r.Collection.FindOneAndUpdate(ctx,
		scoped(bson.M{"_id": objectID}, scope),
		bson.M{"$set": set},
		opts,
	).Decode(&usr)
	if err != nil {
		return nil, err
	}
	return &usr, nil
}

func (r *MongoRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hash string, changedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"password":          hash,
			"passwordChangedAt": changedAt,
			"updatedAt":         time.Now(),
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": expires,
	}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$unset": bson.M{
		"passwordResetToken":   "",
		"passwordResetExpires": "",
	}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Deactivate is the soft delete: the record stays, default-scoped reads stop
// seeing it.
func (r *MongoRepository) Deactivate(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}})
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// LoadActive implements middleware.UserLoader for the access guard.
func (r *MongoRepository) LoadActive(ctx context.Context, id string) (*models.User, error) {
	return r.FindByID(ctx, id, ScopeActive)
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
