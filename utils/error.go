package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceError is a domain failure carrying the HTTP status the boundary
// layer should answer with. Details, when set, is included in the response
// body (used for resolvable conflicts such as stock shortfalls).
type ServiceError struct {
	Code    int
	Message string
	Details interface{}
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Errf builds a ServiceError with a formatted message.
func Errf(code int, format string, args ...interface{}) error {
	return &ServiceError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrWithDetails builds a ServiceError carrying a structured payload.
func ErrWithDetails(code int, message string, details interface{}) error {
	return &ServiceError{Code: code, Message: message, Details: details}
}

// HTTPStatus extracts the status code from an error, defaulting to 500.
func HTTPStatus(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return http.StatusInternalServerError
}

// RespondError maps a service error onto the response. Server faults are
// logged with context; the client only sees the proximate message.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	var se *ServiceError
	if errors.As(err, &se) {
		body := gin.H{"success": false, "message": se.Message}
		if se.Details != nil {
			body["details"] = se.Details
		}
		c.JSON(status, body)
		return
	}
	GetLogger().Error("unexpected server fault", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(status, gin.H{"success": false, "message": "internal server error: " + err.Error()})
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
