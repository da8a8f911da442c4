// Package errors provides custom error types for the audit API.
// All service-layer errors should use AppError so that handlers can
// render a consistent JSON envelope with the right HTTP status.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field-level messages
// and an optional internal error.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"errors,omitempty"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     sentinel.Fields,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Fields:     sentinel.Fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying field-level validation messages.
func WithFields(sentinel *AppError, fields map[string]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Los datos enviados no son válidos", StatusCode: http.StatusUnprocessableEntity}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Recurso no encontrado", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Ocurrió un error interno", StatusCode: http.StatusInternalServerError}
)

// Audit errors.
var (
	ErrUnknownAuditTable   = &AppError{Code: "UNKNOWN_AUDIT_TABLE", Message: "Tabla de auditoría no válida", StatusCode: http.StatusUnprocessableEntity}
	ErrAuditRecordNotFound = &AppError{Code: "AUDIT_RECORD_NOT_FOUND", Message: "Registro de auditoría no encontrado", StatusCode: http.StatusNotFound}
	ErrRetentionTooShort   = &AppError{Code: "INVALID_INPUT", Message: "Solo se pueden eliminar registros con al menos 30 días de antigüedad", StatusCode: http.StatusUnprocessableEntity}
)

// Report errors.
var (
	ErrReportGeneration = &AppError{Code: "REPORT_GENERATION_FAILED", Message: "No se pudo generar el reporte", StatusCode: http.StatusInternalServerError}
)
