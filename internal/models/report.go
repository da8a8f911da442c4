package models

import "time"

// ReportKind selects the shape of a generated spreadsheet.
type ReportKind string

const (
	ReportKindSummary  ReportKind = "summary"
	ReportKindDetailed ReportKind = "detailed"
	ReportKindByActor  ReportKind = "por_usuario"
	ReportKindByTable  ReportKind = "por_tabla"
)

// Valid reports whether k is a supported report kind.
func (k ReportKind) Valid() bool {
	switch k {
	case ReportKindSummary, ReportKindDetailed, ReportKindByActor, ReportKindByTable:
		return true
	}
	return false
}

// ReportRequest carries the validated parameters of a report download.
// Table holds a registry table name; empty means every table.
type ReportRequest struct {
	From    time.Time
	To      time.Time
	Table   string
	Action  *AuditAction
	ActorID *int64
	Kind    ReportKind
}
