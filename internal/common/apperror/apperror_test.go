package apperror

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNormalizeKnownCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"Operational Passthrough", New(404, "No tour found with that ID!"), 404},
		{"Fiber Error", fiber.ErrMethodNotAllowed, 405},
		{"Mongo Not Found", mongo.ErrNoDocuments, 404},
		{"Invalid ObjectID", primitive.ErrInvalidHex, 400},
		{"Expired Token", jwt.ErrTokenExpired, 401},
		{"Malformed Token", jwt.ErrTokenMalformed, 401},
		{"Bad Signature", jwt.ErrTokenSignatureInvalid, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err)
			if got == nil {
				t.Fatalf("Normalize(%v) = nil, want code %d", tt.err, tt.wantCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", got.Code, tt.wantCode)
			}
		})
	}
}

func TestNormalizeUnknownIsInternal(t *testing.T) {
	if got := Normalize(errors.New("connection reset by peer")); got != nil {
		t.Errorf("expected nil for non-operational error, got %v", got)
	}
}

func TestStatusText(t *testing.T) {
	if got := New(400, "x").StatusText(); got != "fail" {
		t.Errorf("4xx StatusText = %q, want fail", got)
	}
	if got := New(500, "x").StatusText(); got != "error" {
		t.Errorf("5xx StatusText = %q, want error", got)
	}
}
