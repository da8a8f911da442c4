package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"magictravel/internal/registry"
)

const dayLayout = "2006-01-02"

// likeEscape is the LIKE escape character. Backslash literals parse
// differently in MySQL and Postgres.
const likeEscape = "!"

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// startOfDay truncates t to midnight, keeping its location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// filteredTable returns an unordered query over one audit table with every
// filter of f applied. The table name is not checked against the registry;
// an unknown table fails when the query runs.
func filteredTable(db *gorm.DB, table string, f AuditFilter) *gorm.DB {
	q := db.Table(table)
	q = applyAuditFilters(q, f)
	return applySearch(q, registry.EntityKey(table), f.Search)
}

// buildAuditQuery returns the row query for one audit table, newest first.
func buildAuditQuery(db *gorm.DB, table string, f AuditFilter) *gorm.DB {
	return filteredTable(db, table, f).Order(registry.ColumnModifiedAt + " DESC")
}

func applyAuditFilters(q *gorm.DB, f AuditFilter) *gorm.DB {
	if f.Action != nil {
		q = q.Where(registry.ColumnAction+" = ?", string(*f.Action))
	}
	if f.ActorID != nil {
		q = q.Where(registry.ColumnActor+" = ?", *f.ActorID)
	}
	// Date bounds are inclusive at day granularity.
	if f.FromDate != nil {
		q = q.Where(registry.ColumnModifiedAt+" >= ?", startOfDay(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where(registry.ColumnModifiedAt+" < ?", startOfDay(*f.ToDate).AddDate(0, 0, 1))
	}
	return q
}

// applySearch adds a case-insensitive substring match over the entity's
// searchable columns, OR-ed together. The term is matched literally.
func applySearch(q *gorm.DB, entity, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}

	cols := registry.SearchColumns(entity)
	conds := make([]string, len(cols))
	args := make([]any, len(cols))
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	for i, col := range cols {
		conds[i] = "LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "'"
		args[i] = pattern
	}
	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}
