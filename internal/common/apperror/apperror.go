package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Error is an operational error: an anticipated, caller-facing failure
// carrying its HTTP status. Anything that does not normalize into one is
// treated as internal and masked outside development.
type Error struct {
	Code    int
	Message string
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

// StatusText follows the response envelope convention: "fail" for client
// errors, "error" for server errors.
func (e *Error) StatusText() string {
	if e.Code < fiber.StatusInternalServerError {
		return "fail"
	}
	return "error"
}

// Normalize maps known failure categories from the drivers and libraries
// underneath us onto operational errors. It returns nil for anything
// unexpected, which the handler reports as a generic internal failure.
func Normalize(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return New(fiberErr.Code, fiberErr.Message)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
		}
		return New(fiber.StatusBadRequest, "Invalid input data: "+strings.Join(msgs, ". "))
	}

	switch {
	case mongo.IsDuplicateKeyError(err):
		return New(fiber.StatusBadRequest, "Duplicate field value. Please use another value!")
	case errors.Is(err, mongo.ErrNoDocuments):
		return New(fiber.StatusNotFound, "No document found with that ID!")
	case errors.Is(err, primitive.ErrInvalidHex):
		return New(fiber.StatusBadRequest, "Invalid identifier")
	case errors.Is(err, jwt.ErrTokenExpired):
		return New(fiber.StatusUnauthorized, "Token expired, please login again!")
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return New(fiber.StatusUnauthorized, "Invalid token, please login again!")
	}

	return nil
}
