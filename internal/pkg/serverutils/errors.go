package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const MessageInternalServerError = "Internal server error"

var ErrInvalidBody = errors.New("invalid request body")

// HTTPError is an expected failure that carries the status code it should be
// rendered with.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// StoreError wraps a failure reported by the notes store. The store's own
// message is what the caller sees.
func StoreError(err error) *HTTPError {
	return &HTTPError{Code: fiber.StatusInternalServerError, Message: err.Error(), Err: err}
}

func BadRequest(err error) *HTTPError {
	return &HTTPError{Code: fiber.StatusBadRequest, Message: err.Error(), Err: err}
}

func (e *HTTPError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

type FieldError struct {
	Field   string
	Tag     string
	Message string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}
