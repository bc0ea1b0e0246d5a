package handlers

import (
	"errors"
	"net/http"

	"solarsmart/internal/api/models"
	"solarsmart/internal/logger"
	"solarsmart/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorDetail maps a domain error to an HTTP status and error body.
func errorDetail(err error) (int, models.ErrorDetail) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, models.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: verr.Error(),
			Details: map[string]interface{}{"field": verr.Field},
		}
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, models.ErrorDetail{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, model.ErrDegenerateResult):
		return http.StatusUnprocessableEntity, models.ErrorDetail{Code: "DEGENERATE_RESULT", Message: err.Error()}
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, models.ErrorDetail{Code: "UNAUTHORIZED", Message: "authentication required"}
	default:
		return http.StatusInternalServerError, models.ErrorDetail{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}
	}
}

func respondError(c *gin.Context, err error) {
	status, detail := errorDetail(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// itemError is the inline error of one entry in a multi-result response.
func itemError(err error) *models.ErrorDetail {
	if err == nil {
		return nil
	}
	_, detail := errorDetail(err)
	return &detail
}
