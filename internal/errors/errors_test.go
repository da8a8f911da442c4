package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	t.Run("wrap_keeps_sentinel_and_cause", func(t *testing.T) {
		cause := stderrors.New("connection reset")
		err := Wrap(ErrReportGeneration, cause)
		if err.Code != ErrReportGeneration.Code || err.StatusCode != http.StatusInternalServerError {
			t.Errorf("unexpected error %+v", err)
		}
		if !stderrors.Is(err, cause) {
			t.Error("expected the cause to be reachable with errors.Is")
		}
	})

	t.Run("with_message", func(t *testing.T) {
		err := WithMessage(ErrNotFound, "Ruta no encontrada")
		if err.Error() != "Ruta no encontrada" || err.Code != "NOT_FOUND" {
			t.Errorf("unexpected error %+v", err)
		}
		if ErrNotFound.Message == "Ruta no encontrada" {
			t.Error("sentinel must not be modified")
		}
	})

	t.Run("with_fields", func(t *testing.T) {
		err := WithFields(ErrUnknownAuditTable, map[string]string{"table": "pagos"})
		if err.Fields["table"] != "pagos" || err.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("unexpected error %+v", err)
		}
		if ErrUnknownAuditTable.Fields != nil {
			t.Error("sentinel must not carry fields")
		}
	})
}
