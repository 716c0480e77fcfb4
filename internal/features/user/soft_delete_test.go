package user

import (
	"context"
	"testing"
	"time"

	"go-tours/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MockUserRepo struct {
	DeactivatedID string
	DeletedID     string
	CapturedScope bson.M
}

func (m *MockUserRepo) Create(ctx context.Context, usr *models.User) (*models.User, error) {
	return usr, nil
}
func (m *MockUserRepo) FindByID(ctx context.Context, id string, scope bson.M) (*models.User, error) {
	m.CapturedScope = scope
	return &models.User{}, nil
}
func (m *MockUserRepo) FindByEmail(ctx context.Context, email string, scope bson.M) (*models.User, error) {
	m.CapturedScope = scope
	return &models.User{}, nil
}
func (m *MockUserRepo) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return &models.User{}, nil
}
func (m *MockUserRepo) List(ctx context.Context, filter bson.M, opts *options.FindOptions, scope bson.M) ([]models.User, error) {
	m.CapturedScope = scope
	return []models.User{}, nil
}
func (m *MockUserRepo) UpdateFields(ctx context.Context, id string, set bson.M, scope bson.M) (*models.User, error) {
	m.CapturedScope = scope
	return &models.User{}, nil
}
func (m *MockUserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string, changedAt time.Time) error {
	return nil
}
func (m *MockUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	return nil
}
func (m *MockUserRepo) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	return nil
}
func (m *MockUserRepo) Deactivate(ctx context.Context, id string) error {
	m.DeactivatedID = id
	return nil
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	m.DeletedID = id
	return nil
}
func (m *MockUserRepo) LoadActive(ctx context.Context, id string) (*models.User, error) {
	return &models.User{}, nil
}
func (m *MockUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func TestDeleteMeDeactivatesInsteadOfDeleting(t *testing.T) {
	mockRepo := &MockUserRepo{}
	service := &ServiceImpl{Repo: mockRepo}

	id := primitive.NewObjectID().Hex()
	if err := service.DeleteMe(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mockRepo.DeactivatedID != id {
		t.Errorf("expected Deactivate(%s), got %q", id, mockRepo.DeactivatedID)
	}
	if mockRepo.DeletedID != "" {
		t.Errorf("DeleteMe must never physically delete, but Delete(%s) was called", mockRepo.DeletedID)
	}
}

func TestListUsesActiveScope(t *testing.T) {
	mockRepo := &MockUserRepo{}
	service := &ServiceImpl{Repo: mockRepo}

	if _, err := service.List(context.Background(), map[string]string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cond, ok := mockRepo.CapturedScope["active"].(bson.M)
	if !ok || cond["$ne"] != false {
		t.Errorf("expected active scope {\"$ne\": false}, got %v", mockRepo.CapturedScope)
	}
}

func TestScopedOverlayWins(t *testing.T) {
	// A client must not widen visibility through its own filter.
	filter := bson.M{"active": true, "role": "guide"}
	got := scoped(filter, ScopeActive)

	cond, ok := got["active"].(bson.M)
	if !ok || cond["$ne"] != false {
		t.Errorf("scope did not win over client filter: %v", got)
	}
	if got["role"] != "guide" {
		t.Errorf("client condition lost: %v", got)
	}
}
