package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "magictravel/internal/errors"
	"magictravel/internal/logger"
	"magictravel/internal/metrics"
	"magictravel/internal/models"
	"magictravel/internal/registry"
	"magictravel/internal/report"
)

const (
	// DetailedReportLimit caps the rows of a detailed report.
	DetailedReportLimit = 3000
	// ActorReportLimit caps the actors of a by-actor report.
	ActorReportLimit = 50
)

var reportTitles = map[models.ReportKind]string{
	models.ReportKindSummary:  "REPORTE DE AUDITORÍA - RESUMEN",
	models.ReportKindByTable:  "REPORTE DE AUDITORÍA - POR TABLA",
	models.ReportKindDetailed: "REPORTE DE AUDITORÍA - DETALLADO",
	models.ReportKindByActor:  "REPORTE DE AUDITORÍA - POR USUARIO",
}

// ReportOptions configures report headers.
type ReportOptions struct {
	OrgName  string
	Location *time.Location
}

// reportService builds spreadsheet reports from the audit tables.
type reportService struct {
	db    *gorm.DB
	store *auditStore
	opts  ReportOptions
	now   func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, opts ReportOptions) ReportServicer {
	return newReportService(db, opts, time.Now)
}

func newReportService(db *gorm.DB, opts ReportOptions, now func() time.Time) *reportService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &reportService{db: db, store: &auditStore{db: db}, opts: opts, now: now}
}

// Generate validates req and builds the requested workbook in memory.
func (s *reportService) Generate(req models.ReportRequest) (*report.Workbook, error) {
	filter, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().In(s.opts.Location)
	header := report.Header{
		Organization: s.opts.OrgName,
		Title:        reportTitles[req.Kind],
		From:         req.From,
		To:           req.To,
		GeneratedAt:  generatedAt,
		Filters:      s.describeFilters(filter),
	}
	filename := report.Filename(string(req.Kind), generatedAt)

	var wb *report.Workbook
	switch req.Kind {
	case models.ReportKindDetailed:
		wb, err = s.detailed(filename, header, filter)
	case models.ReportKindByActor:
		wb, err = s.byActor(filename, header, filter)
	default:
		wb, err = s.summary(filename, header, filter)
	}
	if err != nil {
		return nil, err
	}

	metrics.ReportsGenerated.WithLabelValues(string(req.Kind)).Inc()
	metrics.ReportRows.WithLabelValues(string(req.Kind)).Observe(float64(wb.Rows))
	logger.Get().Infow("audit report generated",
		"kind", req.Kind,
		"rows", wb.Rows,
		"filename", wb.Filename,
	)
	return wb, nil
}

func (s *reportService) validate(req models.ReportRequest) (AuditFilter, error) {
	if !req.Kind.Valid() {
		return AuditFilter{}, apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{
			"tipo_reporte": "El tipo de reporte debe ser summary, detailed, por_usuario o por_tabla",
		})
	}
	if req.To.Before(req.From) {
		return AuditFilter{}, apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{
			"fecha_fin": "La fecha fin debe ser igual o posterior a la fecha inicio",
		})
	}
	if req.Action != nil && !req.Action.Valid() {
		return AuditFilter{}, apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{
			"accion": "La acción debe ser INSERT, UPDATE o DELETE",
		})
	}

	from, to := req.From, req.To
	filter := AuditFilter{
		Action:   req.Action,
		ActorID:  req.ActorID,
		FromDate: &from,
		ToDate:   &to,
	}
	if req.Table != "" {
		tbl, err := resolveTable(req.Table)
		if err != nil {
			return AuditFilter{}, err
		}
		filter.Table = tbl.Name
	}
	return filter, nil
}

// describeFilters renders the optional filters for the report header.
func (s *reportService) describeFilters(f AuditFilter) []string {
	var out []string
	if f.Table != "" {
		out = append(out, "Tabla: "+registry.Label(f.Table))
	}
	if f.Action != nil {
		out = append(out, "Acción: "+f.Action.Label())
	}
	if f.ActorID != nil {
		names := resolveActorNames(s.db, []int64{*f.ActorID})
		out = append(out, "Usuario: "+actorLabel(f.ActorID, names))
	}
	return out
}

func (s *reportService) summary(filename string, h report.Header, f AuditFilter) (*report.Workbook, error) {
	tables, err := scope(f)
	if err != nil {
		return nil, err
	}

	attempts := runAttempts(tables, func(tbl registry.Table) (actionCounts, error) {
		return s.store.countByAction(tbl, f)
	})
	if err := escalate(s.db, opCount, attempts); err != nil {
		return nil, err
	}
	absorbFailures(opCount, attempts)

	rows := make([]report.SummaryRow, len(attempts))
	for i, a := range attempts {
		rows[i] = report.SummaryRow{
			Label:   a.Table.Label,
			Total:   a.Value.Total,
			Inserts: a.Value.Inserts,
			Updates: a.Value.Updates,
			Deletes: a.Value.Deletes,
		}
		if a.Err != nil {
			rows[i] = report.SummaryRow{Label: a.Table.Label, Err: a.Err.Error()}
		}
	}

	wb, err := report.Summary(filename, h, rows)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportGeneration, err)
	}
	return wb, nil
}

func (s *reportService) detailed(filename string, h report.Header, f AuditFilter) (*report.Workbook, error) {
	// The newest N rows overall are always among the newest N of each table.
	records, err := collectRecords(s.db, s.store, f, DetailedReportLimit)
	if err != nil {
		return nil, err
	}
	if len(records) > DetailedReportLimit {
		records = records[:DetailedReportLimit]
	}

	seen := map[int64]bool{}
	var ids []int64
	for _, r := range records {
		if r.ActorID != nil && !seen[*r.ActorID] {
			seen[*r.ActorID] = true
			ids = append(ids, *r.ActorID)
		}
	}
	names := resolveActorNames(s.db, ids)

	rows := make([]report.DetailRow, len(records))
	for i, r := range records {
		rows[i] = report.DetailRow{
			At:          r.ModifiedAt,
			Table:       r.TableLabel,
			Action:      string(r.Action),
			ActionLabel: r.Action.Label(),
			Actor:       actorLabel(r.ActorID, names),
			Record:      affectedRecord(r),
			IP:          r.IP,
		}
	}

	wb, err := report.Detailed(filename, h, rows)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportGeneration, err)
	}
	return wb, nil
}

func (s *reportService) byActor(filename string, h report.Header, f AuditFilter) (*report.Workbook, error) {
	tables, err := scope(f)
	if err != nil {
		return nil, err
	}

	attempts := runAttempts(tables, func(tbl registry.Table) ([]actorGroup, error) {
		return s.store.actorActivity(tbl, f)
	})
	if err := escalate(s.db, opActors, attempts); err != nil {
		return nil, err
	}
	var groups []actorGroup
	for _, a := range absorbFailures(opActors, attempts) {
		groups = append(groups, a.Value...)
	}

	actors := mergeActors(s.db, groups, ActorReportLimit)
	rows := make([]report.ActorRow, len(actors))
	for i, a := range actors {
		rows[i] = report.ActorRow{
			Actor:        a.Actor,
			Total:        a.Total,
			Inserts:      a.Inserts,
			Updates:      a.Updates,
			Deletes:      a.Deletes,
			LastActivity: a.LastActivity,
		}
	}

	wb, err := report.ByActor(filename, h, rows)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportGeneration, err)
	}
	return wb, nil
}

// affectedRecord picks the human readable identity of the audited entity
// from the record payload.
func affectedRecord(r models.AuditRecord) string {
	for _, group := range registry.DisplayRule(registry.EntityKey(r.SourceTable)) {
		parts := make([]string, 0, len(group))
		for _, col := range group {
			if v := strings.TrimSpace(toString(r.Payload[col])); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return fmt.Sprintf("#%d", r.AuditID)
}
