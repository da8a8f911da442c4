package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "magictravel/internal/errors"
	"magictravel/internal/logger"
	"magictravel/internal/validator"
)

const dateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool              `json:"success" example:"false"`
	Code    string            `json:"code" example:"INVALID_INPUT"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// parsePathID parses a positive integer path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{
			param: "Debe ser un número entero positivo",
		})
	}
	return id, nil
}

// parseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{
			field: "Formato de fecha inválido, use YYYY-MM-DD",
		})
	}
	return &t, nil
}

// checkDateRange rejects an end date before the start date.
func checkDateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{
			"fecha_fin": "La fecha fin debe ser igual o posterior a la fecha inicio",
		})
	}
	return nil
}

// bindingError wraps a binding failure as INVALID_INPUT with field messages
// when the validator produced them.
func bindingError(err error) *apperrors.AppError {
	if fields := validator.Messages(err); len(fields) > 0 {
		return apperrors.WithFields(apperrors.ErrInvalidInput, fields)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Errors:  appErr.Fields,
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	})
}

// NotFound renders unknown routes with the standard error envelope.
func NotFound(c *gin.Context) {
	respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Ruta no encontrada"))
}
