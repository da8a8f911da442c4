// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"magictravel/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("audit_action", validateAuditAction)
		_ = v.RegisterValidation("report_kind", validateReportKind)
	}
}

// fieldName reports fields by their wire name so error maps match the request.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func validateAuditAction(fl validator.FieldLevel) bool {
	return models.AuditAction(strings.ToUpper(fl.Field().String())).Valid()
}

func validateReportKind(fl validator.FieldLevel) bool {
	return models.ReportKind(fl.Field().String()).Valid()
}

// Messages converts binding errors into per-field messages. It returns nil
// when err carries no field-level detail.
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "datetime":
		return "Formato de fecha inválido, use YYYY-MM-DD"
	case "min":
		return fmt.Sprintf("El valor mínimo es %s", fe.Param())
	case "max":
		return fmt.Sprintf("El valor máximo es %s", fe.Param())
	case "audit_action":
		return "La acción debe ser INSERT, UPDATE o DELETE"
	case "report_kind":
		return "El tipo de reporte debe ser summary, detailed, por_usuario o por_tabla"
	}
	return "Valor inválido"
}
