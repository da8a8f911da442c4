package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction is the mutation recorded by an audit row.
type AuditAction string

const (
	AuditActionInsert AuditAction = "INSERT"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditActions lists every action in report column order.
var AuditActions = []AuditAction{AuditActionInsert, AuditActionUpdate, AuditActionDelete}

// Valid reports whether a is one of the known actions.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionInsert, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// Label returns the Spanish display label used in reports.
func (a AuditAction) Label() string {
	switch a {
	case AuditActionInsert:
		return "Creación"
	case AuditActionUpdate:
		return "Modificación"
	case AuditActionDelete:
		return "Eliminación"
	}
	return string(a)
}

// AuditRecord is one row of an audit shadow table. SourceTable and
// TableLabel are attached when the row is read; they are not stored.
type AuditRecord struct {
	AuditID     int64             `json:"auditoria_id"`
	Action      AuditAction       `json:"accion"`
	ActorID     *int64            `json:"usuario_modificacion"`
	ModifiedAt  time.Time         `json:"fecha_modificacion"`
	IP          string            `json:"ip_modificacion,omitempty"`
	SourceTable string            `json:"tabla_origen"`
	TableLabel  string            `json:"tabla_nombre"`
	Payload     datatypes.JSONMap `json:"datos"`
}
