package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/pkg/logger"
)

type APIResponse struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// RespondValidation answers 422 with one message per field so the form can
// be shown again.
func RespondValidation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Status:  "error",
		Code:    http.StatusUnprocessableEntity,
		Message: "Please correct the highlighted fields",
		TraceID: c.GetString("trace_id"),
		Errors:  fields,
	})
}

// RespondBindError turns a gin binding error into field messages when it can.
func RespondBindError(c *gin.Context, err error) {
	if fields := ValidationMessages(err); len(fields) > 0 {
		RespondValidation(c, fields)
		return
	}
	RespondError(c, http.StatusBadRequest, "Invalid request format")
}

func HandleServiceError(c *gin.Context, err error) {
	var fieldErr *FieldError

	switch {
	case errors.As(err, &fieldErr):
		RespondValidation(c, map[string]string{fieldErr.Field: fieldErr.Message})
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Login Unsuccessful. Please check email and password")
	case errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusBadRequest, "That is an invalid or expired token")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrJobNotFound):
		RespondError(c, http.StatusNotFound, "Job not found")
	case errors.Is(err, ErrSearchNotFound):
		RespondError(c, http.StatusNotFound, "Saved search not found")
	case errors.Is(err, ErrNotAdmin):
		RespondError(c, http.StatusForbidden, "Only admins can run ingestion")
	case errors.Is(err, ErrUnknownSource):
		RespondError(c, http.StatusBadRequest, "Unknown job source")
	case errors.Is(err, ErrNothingToUpdate):
		RespondError(c, http.StatusBadRequest, "Nothing to update")
	case errors.Is(err, ErrCheckoutDisabled):
		RespondError(c, http.StatusServiceUnavailable, "Checkout is not available")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDatabaseError):
		logger.Error().Err(err).Str("trace_id", c.GetString("trace_id")).Msg("Database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.Error().Err(err).Str("trace_id", c.GetString("trace_id")).Msg("Unhandled service error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// Paging reads page and page_size query params, defaulting to 1 and 20.
func Paging(c *gin.Context) (int, int, error) {
	var q struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	_ = c.ShouldBindQuery(&q)

	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
	if q.Page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}
	return q.Page, q.PageSize, nil
}
