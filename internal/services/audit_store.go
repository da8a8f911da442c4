package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"magictravel/internal/models"
	"magictravel/internal/registry"
)

// auditStore runs the per-table queries shared by the audit and report services.
type auditStore struct {
	db *gorm.DB
}

// actionCounts is the per-action breakdown of one table.
type actionCounts struct {
	Total   int64
	Inserts int64
	Updates int64
	Deletes int64
}

func (c *actionCounts) add(action models.AuditAction, n int64) {
	c.Total += n
	switch action {
	case models.AuditActionInsert:
		c.Inserts += n
	case models.AuditActionUpdate:
		c.Updates += n
	case models.AuditActionDelete:
		c.Deletes += n
	}
}

// actorGroup is one (actor, action) bucket of one table.
type actorGroup struct {
	ActorID *int64
	Action  models.AuditAction
	Total   int64
	LastAt  time.Time
}

// fetchRecords returns the matching rows of one table, newest first. A
// positive limit caps the rows read from that table.
func (s *auditStore) fetchRecords(tbl registry.Table, f AuditFilter, limit int) ([]models.AuditRecord, error) {
	q := buildAuditQuery(s.db, tbl.Name, f)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]models.AuditRecord, len(rows))
	for i, row := range rows {
		records[i] = toRecord(tbl, row)
	}
	return records, nil
}

// countByAction counts the matching rows of one table per action.
func (s *auditStore) countByAction(tbl registry.Table, f AuditFilter) (actionCounts, error) {
	var rows []struct {
		Accion string
		Total  int64
	}
	err := filteredTable(s.db, tbl.Name, f).
		Select(registry.ColumnAction + " AS accion, COUNT(*) AS total").
		Group(registry.ColumnAction).
		Scan(&rows).Error
	if err != nil {
		return actionCounts{}, err
	}

	var counts actionCounts
	for _, r := range rows {
		counts.add(models.AuditAction(strings.ToUpper(r.Accion)), r.Total)
	}
	return counts, nil
}

// actorActivity groups the matching rows of one table by actor and action.
func (s *auditStore) actorActivity(tbl registry.Table, f AuditFilter) ([]actorGroup, error) {
	var rows []map[string]any
	err := filteredTable(s.db, tbl.Name, f).
		Select(registry.ColumnActor + " AS usuario_id, " +
			registry.ColumnAction + " AS accion, COUNT(*) AS total, MAX(" +
			registry.ColumnModifiedAt + ") AS ultima").
		Group(registry.ColumnActor + ", " + registry.ColumnAction).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	groups := make([]actorGroup, 0, len(rows))
	for _, row := range rows {
		g := actorGroup{Action: models.AuditAction(strings.ToUpper(toString(row["accion"])))}
		if id, ok := toInt64(row["usuario_id"]); ok {
			g.ActorID = &id
		}
		g.Total, _ = toInt64(row["total"])
		g.LastAt, _ = toTime(row["ultima"])
		groups = append(groups, g)
	}
	return groups, nil
}

// modifiedSince returns the modification timestamps of the matching rows of
// one table at or after since.
func (s *auditStore) modifiedSince(tbl registry.Table, f AuditFilter, since time.Time) ([]time.Time, error) {
	var rows []map[string]any
	err := filteredTable(s.db, tbl.Name, f).
		Select(registry.ColumnModifiedAt).
		Where(registry.ColumnModifiedAt+" >= ?", since).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		if t, ok := toTime(row[registry.ColumnModifiedAt]); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// findRecord loads a single row by id. It returns nil when no row matches.
func (s *auditStore) findRecord(tbl registry.Table, auditID int64) (*models.AuditRecord, error) {
	var rows []map[string]any
	err := s.db.Table(tbl.Name).
		Where(registry.ColumnAuditID+" = ?", auditID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	rec := toRecord(tbl, rows[0])
	return &rec, nil
}

// purgeBefore deletes the rows of one table modified strictly before cutoff.
func (s *auditStore) purgeBefore(tbl registry.Table, cutoff time.Time) (int64, error) {
	res := s.db.Exec("DELETE FROM "+tbl.Name+" WHERE "+registry.ColumnModifiedAt+" < ?", cutoff)
	return res.RowsAffected, res.Error
}
