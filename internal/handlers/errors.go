package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	incorrectCredentialsMessage = "Incorrect email or password"
	duplicateAccountMessage     = "The user with this email already exists in the system."
	internalErrorMessage        = "Internal server error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse adds field level detail to an ErrorResponse.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// handleServiceError renders err the way clients expect. Authentication failures are
// reduced to a generic message and never reveal which check failed.
func handleServiceError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		validationErr *apperrors.ValidationError
		appErr        *apperrors.AppError
	)
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		logger.Info(action+" rejected", slog.String("reason", "invalid credentials"))
		middleware.AbortUnauthorized(c, incorrectCredentialsMessage)
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrSessionNotFound):
		logger.Info(action+" rejected", slog.String("reason", "invalid token"))
		middleware.AbortUnauthorized(c, middleware.CredentialsErrorMessage)
	case errors.Is(err, apperrors.ErrDuplicateAccount):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: duplicateAccountMessage})
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "Validation failed",
			Fields: validationErr.Fields,
		})
	case errors.As(err, &appErr):
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error(action+" failed", slog.String("error", err.Error()))
		}
		c.AbortWithStatusJSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	case errors.Is(err, apperrors.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	default:
		logger.Error(action+" failed", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
	}
}

// handleBindError renders a request binding failure as a 422 with field detail.
func handleBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Request binding failed", slog.String("error", err.Error()))
	handleServiceError(c, apperrors.FromBindingError(err), "bind")
}
