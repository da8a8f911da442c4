package models

import "testing"

func TestAuditAction(t *testing.T) {
	tests := []struct {
		action AuditAction
		valid  bool
		label  string
	}{
		{AuditActionInsert, true, "Creación"},
		{AuditActionUpdate, true, "Modificación"},
		{AuditActionDelete, true, "Eliminación"},
		{AuditAction("insert"), false, "insert"},
		{AuditAction(""), false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if got := tt.action.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.action.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestReportKindValid(t *testing.T) {
	for _, k := range []ReportKind{ReportKindSummary, ReportKindDetailed, ReportKindByActor, ReportKindByTable} {
		if !k.Valid() {
			t.Errorf("expected %q to be valid", k)
		}
	}
	if ReportKind("by_actor").Valid() {
		t.Error("expected by_actor to be rejected; the wire value is por_usuario")
	}
}
