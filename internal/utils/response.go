package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/apperrors"
)

// ErrorResponse represents the body of every error response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK sends data as the raw JSON body with status 200.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, errorType apperrors.ErrorType, message string) {
	c.JSON(statusCode, ErrorResponse{
		Status:  statusCode,
		Message: message,
		Error:   string(errorType),
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.ErrorTypeValidation, message)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, apperrors.ErrorTypeNotFound, message)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, apperrors.ErrorTypeInternal, message)
}

// StatusFor maps an application error type to its HTTP status code.
func StatusFor(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeNoWaitingTokens:
		return http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the response for err. Typed application errors keep
// their message; anything else is logged and answered with fallback as a 500.
func RespondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type != apperrors.ErrorTypeInternal {
		Error(c, StatusFor(appErr.Type), appErr.Type, appErr.Message)
		return
	}

	logger.Error(fallback,
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c, fallback)
}
