package emails

import (
	"context"
	"time"

	"go-tours/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository persists outbound emails so delivery status survives restarts.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *database.MongodbDB) *Repository {
	return &Repository{collection: db.DB.Collection("emails")}
}

func (r *Repository) Create(ctx context.Context, email *Email) error {
	email.ID = primitive.NewObjectID()
	email.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, email)
	return err
}

func (r *Repository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status EmailStatus, errMsg string) error {
	set := bson.M{"status": status}
	if errMsg != "" {
		set["errorMessage"] = errMsg
	}
	if status == EmailSent {
		set["sentAt"] = time.Now()
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}
