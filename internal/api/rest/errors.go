package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-composable-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(message))
}

// respondUnauthorized responds with an unauthorized error
func respondUnauthorized(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusUnauthorized, errors.NewUnauthorizedError(message, details...))
}

// respondError responds with the status matching the error code
func respondError(c *gin.Context, err error, message string) {
	apiErr := errors.FromError(message, err)
	status := statusOf(apiErr.Code)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	} else {
		logger.InfoCtx(c.Request.Context(), "Request rejected",
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(apiErr.Code)),
		)
	}
	c.JSON(status, apiErr)
}

// statusOf maps an error code to an HTTP status
func statusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden,
		errors.ErrorCode(domain.ErrorKindNotAuthorized),
		errors.ErrorCode(domain.ErrorKindTransferNotAllowed):
		return http.StatusForbidden
	case errors.ErrCodeNotFound,
		errors.ErrorCode(domain.ErrorKindUnknownParent),
		errors.ErrorCode(domain.ErrorKindTokenNotFound),
		errors.ErrorCode(domain.ErrorKindUnknownRegistry):
		return http.StatusNotFound
	case errors.ErrCodeInternalError, errors.ErrCodeDatabaseError, errors.ErrCodeServiceError:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
