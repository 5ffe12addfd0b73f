package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches a cause to a copy of a sentinel error, keeping the
// sentinel itself immutable.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// WithMessage returns a copy of a sentinel with a request-specific message.
func WithMessage(sentinel *Error, message string) *Error {
	return &Error{Code: sentinel.Code, Message: message}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Access denied. Admin privileges required.", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid username or password.", nil)
	ErrSessionExpired     = New(http.StatusUnauthorized, "Session expired. Please login again.", nil)
)

// Validation error types
var (
	ErrValidation        = New(http.StatusBadRequest, "Validation error", nil)
	ErrDuplicateUsername = New(http.StatusConflict, "Username already exists. Please choose another.", nil)
	ErrPasswordMismatch  = New(http.StatusBadRequest, "Passwords do not match.", nil)
)

// Business logic error types
var (
	ErrProductNotFound   = New(http.StatusNotFound, "Product not found.", nil)
	ErrInsufficientStock = New(http.StatusBadRequest, "Insufficient stock", nil)
	ErrEmptyCart         = New(http.StatusBadRequest, "Your cart is empty.", nil)
)

// ErrorMiddleware recovers service errors attached via c.Error into a
// JSON body with the matching status code.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *Error
			if e, ok := err.(*Error); ok {
				appErr = e
			} else {
				appErr = Wrap(ErrInternalServer, err)
			}

			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			c.Abort()
		}
	}
}
