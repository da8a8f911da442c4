package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "magictravel/internal/errors"
	"magictravel/internal/logger"
	"magictravel/internal/metrics"
	"magictravel/internal/models"
	"magictravel/internal/pagination"
	"magictravel/internal/registry"
)

const (
	// MinRetentionDays is the youngest age a purge may remove.
	MinRetentionDays = 30

	topActorsLimit = 5
	timelineDays   = 30
)

// auditService reads and maintains the audit shadow tables.
type auditService struct {
	db    *gorm.DB
	store *auditStore
	now   func() time.Time
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return newAuditService(db, time.Now)
}

func newAuditService(db *gorm.DB, now func() time.Time) *auditService {
	return &auditService{db: db, store: &auditStore{db: db}, now: now}
}

// resolveTable returns the registry entry for name or an UNKNOWN_AUDIT_TABLE error.
func resolveTable(name string) (registry.Table, error) {
	tbl, ok := registry.Lookup(name)
	if !ok {
		return registry.Table{}, apperrors.WithFields(apperrors.ErrUnknownAuditTable, map[string]string{
			"table": "La tabla " + name + " no es una tabla de auditoría válida",
		})
	}
	return tbl, nil
}

// scope returns the tables a filter covers: the named table or the whole registry.
func scope(f AuditFilter) ([]registry.Table, error) {
	if f.Table == "" {
		return registry.All(), nil
	}
	tbl, err := resolveTable(f.Table)
	if err != nil {
		return nil, err
	}
	return []registry.Table{tbl}, nil
}

// List returns the merged, newest-first audit feed for the filter, paginated in memory.
func (s *auditService) List(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditRecord], error) {
	records, err := s.collect(filter, 0)
	if err != nil {
		return nil, err
	}
	resp := pagination.Slice(records, page)
	return &resp, nil
}

// ListByTable returns the feed of a single table.
func (s *auditService) ListByTable(table string, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditRecord], error) {
	tbl, err := resolveTable(table)
	if err != nil {
		return nil, err
	}
	filter.Table = tbl.Name
	return s.List(filter, page)
}

// ListByActor returns the feed of a single actor across every table.
func (s *auditService) ListByActor(actorID int64, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditRecord], error) {
	filter.ActorID = &actorID
	return s.List(filter, page)
}

// collect runs the record query over every table in scope and merges the
// results newest first. Rows with equal timestamps keep registry order.
func (s *auditService) collect(filter AuditFilter, perTableLimit int) ([]models.AuditRecord, error) {
	return collectRecords(s.db, s.store, filter, perTableLimit)
}

func collectRecords(db *gorm.DB, store *auditStore, filter AuditFilter, perTableLimit int) ([]models.AuditRecord, error) {
	tables, err := scope(filter)
	if err != nil {
		return nil, err
	}

	attempts := runAttempts(tables, func(tbl registry.Table) ([]models.AuditRecord, error) {
		return store.fetchRecords(tbl, filter, perTableLimit)
	})
	if err := escalate(db, opList, attempts); err != nil {
		return nil, err
	}

	var records []models.AuditRecord
	for _, a := range absorbFailures(opList, attempts) {
		records = append(records, a.Value...)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ModifiedAt.After(records[j].ModifiedAt)
	})
	return records, nil
}

// GetRecord returns one audit row by table and id.
func (s *auditService) GetRecord(table string, auditID int64) (*models.AuditRecord, error) {
	tbl, err := resolveTable(table)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.findRecord(tbl, auditID)
	if err != nil {
		return nil, fatal(opRecord, err)
	}
	if rec == nil {
		return nil, apperrors.ErrAuditRecordNotFound
	}
	return rec, nil
}

// Stats summarizes the audit log for the filter.
func (s *auditService) Stats(filter AuditFilter) (*AuditStats, error) {
	tables, err := scope(filter)
	if err != nil {
		return nil, err
	}

	stats := &AuditStats{
		ActionCounts: map[models.AuditAction]int64{},
	}
	for _, a := range models.AuditActions {
		stats.ActionCounts[a] = 0
	}

	counts := runAttempts(tables, func(tbl registry.Table) (actionCounts, error) {
		return s.store.countByAction(tbl, filter)
	})
	if err := escalate(s.db, opCount, counts); err != nil {
		return nil, err
	}
	absorbFailures(opCount, counts)
	// Failed tables keep their slot with a zero total.
	for _, a := range counts {
		c := a.Value
		stats.TotalRecords += c.Total
		stats.ActionCounts[models.AuditActionInsert] += c.Inserts
		stats.ActionCounts[models.AuditActionUpdate] += c.Updates
		stats.ActionCounts[models.AuditActionDelete] += c.Deletes
		stats.TableActivity = append(stats.TableActivity, TableActivity{
			Table: a.Table.Name,
			Label: a.Table.Label,
			Total: c.Total,
		})
	}

	actors := runAttempts(tables, func(tbl registry.Table) ([]actorGroup, error) {
		return s.store.actorActivity(tbl, filter)
	})
	var groups []actorGroup
	for _, a := range absorbFailures(opActors, actors) {
		groups = append(groups, a.Value...)
	}
	stats.TopActors = mergeActors(s.db, groups, topActorsLimit)

	stats.LastMonth = s.lastMonth(tables, filter)
	return stats, nil
}

// lastMonth buckets activity per day over the trailing window ending today,
// oldest first. Days without activity are present with a zero total.
func (s *auditService) lastMonth(tables []registry.Table, filter AuditFilter) []DailyActivity {
	today := startOfDay(s.now().UTC())
	since := today.AddDate(0, 0, -(timelineDays - 1))

	buckets := make([]DailyActivity, timelineDays)
	index := make(map[string]int, timelineDays)
	for i := range buckets {
		day := since.AddDate(0, 0, i).Format(dayLayout)
		buckets[i] = DailyActivity{Date: day}
		index[day] = i
	}

	attempts := runAttempts(tables, func(tbl registry.Table) ([]time.Time, error) {
		return s.store.modifiedSince(tbl, filter, since)
	})
	for _, a := range absorbFailures(opTimeline, attempts) {
		for _, t := range a.Value {
			if i, ok := index[t.Format(dayLayout)]; ok {
				buckets[i].Total++
			}
		}
	}
	return buckets
}

// Purge deletes audit rows older than days from every table. Tables that
// fail are skipped; rows already deleted elsewhere stay deleted.
func (s *auditService) Purge(days int) (*PurgeResult, error) {
	if days < MinRetentionDays {
		return nil, apperrors.WithFields(apperrors.ErrRetentionTooShort, map[string]string{
			"dias": "El valor mínimo es 30 días",
		})
	}

	cutoff := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	result := &PurgeResult{Cutoff: cutoff, FailedTables: []string{}}

	attempts := runAttempts(registry.All(), func(tbl registry.Table) (int64, error) {
		return s.store.purgeBefore(tbl, cutoff)
	})
	if err := escalate(s.db, opPurge, attempts); err != nil {
		return nil, err
	}
	for _, a := range attempts {
		if a.Err != nil {
			result.FailedTables = append(result.FailedTables, a.Table.Name)
		}
	}
	for _, a := range absorbFailures(opPurge, attempts) {
		result.Deleted += a.Value
		if a.Value > 0 {
			metrics.PurgedRecords.WithLabelValues(a.Table.Name).Add(float64(a.Value))
		}
	}

	logger.Get().Infow("audit records purged",
		"days", days,
		"cutoff", cutoff,
		"deleted", result.Deleted,
		"failed_tables", result.FailedTables,
	)
	return result, nil
}
