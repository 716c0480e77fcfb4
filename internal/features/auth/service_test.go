package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	emails "go-tours/internal/email"
	"go-tours/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MockUserRepo struct {
	User *models.User

	StoredResetHash    string
	StoredResetExpires time.Time
	ClearedResetToken  bool

	SetPasswordHash      string
	SetPasswordChangedAt time.Time
}

func (m *MockUserRepo) Create(ctx context.Context, usr *models.User) (*models.User, error) {
	usr.ID = primitive.NewObjectID()
	m.User = usr
	return usr, nil
}
func (m *MockUserRepo) FindByID(ctx context.Context, id string, scope bson.M) (*models.User, error) {
	if m.User == nil {
		return nil, mongo.ErrNoDocuments
	}
	return m.User, nil
}
func (m *MockUserRepo) FindByEmail(ctx context.Context, email string, scope bson.M) (*models.User, error) {
	if m.User == nil || m.User.Email != email {
		return nil, mongo.ErrNoDocuments
	}
	return m.User, nil
}
func (m *MockUserRepo) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	if m.User == nil || m.StoredResetHash == "" || m.StoredResetHash != tokenHash {
		return nil, mongo.ErrNoDocuments
	}
	if !m.StoredResetExpires.After(now) {
		return nil, mongo.ErrNoDocuments
	}
	return m.User, nil
}
func (m *MockUserRepo) List(ctx context.Context, filter bson.M, opts *options.FindOptions, scope bson.M) ([]models.User, error) {
	return nil, nil
}
func (m *MockUserRepo) UpdateFields(ctx context.Context, id string, set bson.M, scope bson.M) (*models.User, error) {
	return m.User, nil
}
func (m *MockUserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string, changedAt time.Time) error {
	m.SetPasswordHash = hash
	m.SetPasswordChangedAt = changedAt
	m.StoredResetHash = ""
	return nil
}
func (m *MockUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	m.StoredResetHash = tokenHash
	m.StoredResetExpires = expires
	return nil
}
func (m *MockUserRepo) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	m.ClearedResetToken = true
	m.StoredResetHash = ""
	return nil
}
func (m *MockUserRepo) Deactivate(ctx context.Context, id string) error { return nil }
func (m *MockUserRepo) Delete(ctx context.Context, id string) error     { return nil }
func (m *MockUserRepo) LoadActive(ctx context.Context, id string) (*models.User, error) {
	return m.User, nil
}
func (m *MockUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

type MockMailer struct {
	Sent []*emails.Email
	Err  error
}

func (m *MockMailer) Send(ctx context.Context, email *emails.Email) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, email)
	return nil
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("pass1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := HashPassword("pass1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password must differ (salt)")
	}
	if !CheckPassword("pass1234", h1) {
		t.Error("CheckPassword rejected the correct plaintext")
	}
	if CheckPassword("wrongpass", h1) {
		t.Error("CheckPassword accepted the wrong plaintext")
	}
}

func TestForgotPasswordStoresOnlyHash(t *testing.T) {
	hash, _ := HashPassword("pass1234")
	repo := &MockUserRepo{User: &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: hash,
	}}
	mail := &MockMailer{}
	service := &ServiceImpl{Users: repo, Mail: mail}

	err := service.ForgotPassword(context.Background(), "jane@example.com", "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mail.Sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mail.Sent))
	}
	body := mail.Sent[0].TextBody

	if repo.StoredResetHash == "" {
		t.Fatal("no reset hash stored")
	}
	if strings.Contains(body, repo.StoredResetHash) {
		t.Error("stored hash leaked into the email; the raw token should be sent instead")
	}

	// the raw token from the email must hash to the stored value
	parts := strings.Split(strings.TrimSpace(body), "/")
	raw := parts[len(parts)-1]
	raw = strings.TrimSpace(strings.Split(raw, "\n")[0])
	if HashResetToken(raw) != repo.StoredResetHash {
		t.Error("emailed token does not hash to the stored value")
	}

	ttl := time.Until(repo.StoredResetExpires)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("reset deadline should be ~10 minutes out, got %v", ttl)
	}
}

func TestResetPasswordTamperedToken(t *testing.T) {
	repo := &MockUserRepo{User: &models.User{ID: primitive.NewObjectID()}}
	service := &ServiceImpl{Users: repo, Mail: &MockMailer{}}

	raw, hash, err := NewResetToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.StoredResetHash = hash
	repo.StoredResetExpires = time.Now().Add(resetTokenTTL)

	_, err = service.ResetPassword(context.Background(), raw+"00", "newpass123", "newpass123")
	if err == nil {
		t.Fatal("tampered token accepted")
	}

	if repo.SetPasswordHash != "" {
		t.Error("password must not change on a tampered token")
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	repo := &MockUserRepo{User: &models.User{ID: primitive.NewObjectID()}}
	service := &ServiceImpl{Users: repo, Mail: &MockMailer{}}

	raw, hash, _ := NewResetToken()
	repo.StoredResetHash = hash
	repo.StoredResetExpires = time.Now().Add(-time.Minute)

	if _, err := service.ResetPassword(context.Background(), raw, "newpass123", "newpass123"); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestResetPasswordSuccessClearsFields(t *testing.T) {
	usr := &models.User{ID: primitive.NewObjectID(), Email: "jane@example.com"}
	repo := &MockUserRepo{User: usr}
	service := &ServiceImpl{Users: repo, Mail: &MockMailer{}}

	raw, hash, _ := NewResetToken()
	repo.StoredResetHash = hash
	repo.StoredResetExpires = time.Now().Add(resetTokenTTL)

	got, err := service.ResetPassword(context.Background(), raw, "newpass123", "newpass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.StoredResetHash != "" {
		t.Error("reset fields not cleared after successful reset")
	}
	if repo.SetPasswordHash == "" || !CheckPassword("newpass123", repo.SetPasswordHash) {
		t.Error("new password not persisted as a verifiable hash")
	}
	if got.PasswordChangedAt == nil {
		t.Error("passwordChangedAt not set")
	}
	if !repo.SetPasswordChangedAt.Before(time.Now()) {
		t.Error("passwordChangedAt should carry the clock-skew buffer")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	hash, _ := HashPassword("correct-horse")
	repo := &MockUserRepo{User: &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: hash,
	}}
	service := &ServiceImpl{Users: repo, Mail: &MockMailer{}}

	if _, err := service.Login(context.Background(), "jane@example.com", "battery-staple"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := service.Login(context.Background(), "nobody@example.com", "correct-horse"); err == nil {
		t.Error("unknown email accepted")
	}
	if _, err := service.Login(context.Background(), "jane@example.com", "correct-horse"); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
}

func TestSignupRejectsMismatchedConfirm(t *testing.T) {
	repo := &MockUserRepo{}
	service := &ServiceImpl{Users: repo, Mail: &MockMailer{}}

	_, err := service.Signup(context.Background(), SignupInput{
		Name:            "Jane",
		Email:           "jane@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass5678",
	})
	if err == nil {
		t.Fatal("mismatched passwordConfirm accepted")
	}
	if repo.User != nil {
		t.Error("user must not be created when confirmation fails")
	}
}

func TestSignupHashesAndNeverStoresConfirm(t *testing.T) {
	repo := &MockUserRepo{}
	service := &ServiceImpl{Users: repo, Mail: &MockMailer{}}

	usr, err := service.Signup(context.Background(), SignupInput{
		Name:            "Jane",
		Email:           "Jane@Example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if usr.Password == "pass1234" {
		t.Error("password stored in plaintext")
	}
	if !CheckPassword("pass1234", usr.Password) {
		t.Error("stored hash does not verify")
	}
	if usr.Email != "jane@example.com" {
		t.Errorf("email not lowercased: %s", usr.Email)
	}
	if usr.Role != models.RoleUser {
		t.Errorf("signup role = %s, want user", usr.Role)
	}
}
