package services

import (
	"time"

	"magictravel/internal/models"
	"magictravel/internal/pagination"
	"magictravel/internal/report"
)

// AuditFilter holds optional filter parameters for audit queries.
// Table is taken as sent by the client and resolved against the registry.
type AuditFilter struct {
	Table    string
	Action   *models.AuditAction
	ActorID  *int64
	FromDate *time.Time
	ToDate   *time.Time
	Search   string
}

// TableActivity is the record count of one audit table.
type TableActivity struct {
	Table string `json:"tabla"`
	Label string `json:"nombre"`
	Total int64  `json:"total"`
}

// ActorActivity aggregates the actions of one actor across tables.
type ActorActivity struct {
	ActorID      *int64    `json:"usuario_id"`
	Actor        string    `json:"usuario"`
	Total        int64     `json:"total"`
	Inserts      int64     `json:"creaciones"`
	Updates      int64     `json:"modificaciones"`
	Deletes      int64     `json:"eliminaciones"`
	LastActivity time.Time `json:"ultima_actividad"`
}

// DailyActivity is the record count of one calendar day.
type DailyActivity struct {
	Date  string `json:"fecha"`
	Total int64  `json:"total"`
}

// AuditStats is the dashboard summary of the audit log.
type AuditStats struct {
	TotalRecords  int64                        `json:"total_registros"`
	ActionCounts  map[models.AuditAction]int64 `json:"acciones_por_tipo"`
	TableActivity []TableActivity              `json:"actividad_por_tabla"`
	TopActors     []ActorActivity              `json:"usuarios_mas_activos"`
	LastMonth     []DailyActivity              `json:"actividad_ultimo_mes"`
}

// PurgeResult reports the outcome of a retention purge.
type PurgeResult struct {
	Deleted      int64     `json:"eliminados"`
	Cutoff       time.Time `json:"fecha_corte"`
	FailedTables []string  `json:"tablas_con_error"`
}

// AuditServicer defines the contract for reading and maintaining the audit log.
type AuditServicer interface {
	List(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditRecord], error)
	ListByTable(table string, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditRecord], error)
	ListByActor(actorID int64, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditRecord], error)
	GetRecord(table string, auditID int64) (*models.AuditRecord, error)
	Stats(filter AuditFilter) (*AuditStats, error)
	Purge(days int) (*PurgeResult, error)
}

// ReportServicer defines the contract for spreadsheet report generation.
type ReportServicer interface {
	Generate(req models.ReportRequest) (*report.Workbook, error)
}
