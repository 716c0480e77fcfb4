package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go-tours/internal/common/apperror"
	emails "go-tours/internal/email"
	"go-tours/internal/features/user"
	"go-tours/internal/models"
	"go-tours/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost    = 12
	resetTokenTTL = 10 * time.Minute

	// passwordChangeSkew is subtracted from the password-changed timestamp
	// so a token signed in the same instant is not rejected.
	passwordChangeSkew = time.Second
)

type Service interface {
	Signup(ctx context.Context, input SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	ForgotPassword(ctx context.Context, email, resetURLBase string) error
	ResetPassword(ctx context.Context, rawToken, password, passwordConfirm string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, password, passwordConfirm string) (*models.User, error)
}

type SignupInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type passwordPair struct {
	Password        string `validate:"required,min=6"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
}

type ServiceImpl struct {
	Users user.Repository
	Mail  emails.Sender
}

func NewService(users user.Repository, mail *emails.Service) Service {
	return &ServiceImpl{Users: users, Mail: mail}
}

// HashPassword hashes with a fixed cost of 12. Two hashes of the same
// plaintext differ because of the embedded salt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a candidate against the stored hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewResetToken returns a random 32-byte token and the SHA-256 hex of it.
// Only the hash is ever stored; the raw value goes out-of-band to the user.
func NewResetToken() (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *ServiceImpl) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	if err := utils.Validate.Struct(input); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// Role is never taken from the request body.
	return s.Users.Create(ctx, &models.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Password: hash,
		Role:     models.RoleUser,
	})
}

func (s *ServiceImpl) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperror.New(fiber.StatusBadRequest, "Please provide email and password!")
	}

	usr, err := s.Users.FindByEmail(ctx, strings.ToLower(email), user.ScopeActive)
	if err != nil || !CheckPassword(password, usr.Password) {
		return nil, apperror.New(fiber.StatusUnauthorized, "Invalid credentials!")
	}
	return usr, nil
}

func (s *ServiceImpl) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	usr, err := s.Users.FindByEmail(ctx, strings.ToLower(email), user.ScopeActive)
	if err != nil {
		return apperror.New(fiber.StatusNotFound, "No user with that email!")
	}

	raw, hash, err := NewResetToken()
	if err != nil {
		return err
	}
	if err := s.Users.SetResetToken(ctx, usr.ID, hash, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", resetURLBase, raw)
	message := "You are receiving this email because a password reset was requested for your account.\n\n" +
		"Submit a PATCH request with your new password and passwordConfirm to:\n\n" +
		resetURL + "\n\n" +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"

	err = s.Mail.Send(ctx, &emails.Email{
		To:       []string{usr.Email},
		Subject:  "Password Reset Request (valid for 10 minutes)",
		TextBody: message,
	})
	if err != nil {
		// do not leave a dangling token the user never received
		_ = s.Users.ClearResetToken(ctx, usr.ID)
		return err
	}
	return nil
}

func (s *ServiceImpl) ResetPassword(ctx context.Context, rawToken, password, passwordConfirm string) (*models.User, error) {
	usr, err := s.Users.FindByResetToken(ctx, HashResetToken(rawToken), time.Now())
	if err != nil {
		return nil, apperror.New(fiber.StatusBadRequest, "Token is invalid or has expired!")
	}

	if err := s.setNewPassword(ctx, usr, password, passwordConfirm); err != nil {
		return nil, err
	}
	return usr, nil
}

func (s *ServiceImpl) UpdatePassword(ctx context.Context, userID, currentPassword, password, passwordConfirm string) (*models.User, error) {
	usr, err := s.Users.FindByID(ctx, userID, user.ScopeActive)
	if err != nil {
		return nil, apperror.New(fiber.StatusNotFound, "User not found!")
	}

	if !CheckPassword(currentPassword, usr.Password) {
		return nil, apperror.New(fiber.StatusUnauthorized, "Invalid credentials!")
	}

	if err := s.setNewPassword(ctx, usr, password, passwordConfirm); err != nil {
		return nil, err
	}
	return usr, nil
}

func (s *ServiceImpl) setNewPassword(ctx context.Context, usr *models.User, password, passwordConfirm string) error {
	if err := utils.Validate.Struct(passwordPair{Password: password, PasswordConfirm: passwordConfirm}); err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	changedAt := time.Now().Add(-passwordChangeSkew)
	if err := s.Users.SetPassword(ctx, usr.ID, hash, changedAt); err != nil {
		return err
	}

	usr.Password = hash
	usr.PasswordChangedAt = &changedAt
	usr.PasswordResetToken = ""
	usr.PasswordResetExpires = nil
	return nil
}
