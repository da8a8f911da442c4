package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"magictravel/internal/models"
	"magictravel/internal/registry"
)

// timeLayouts covers the textual timestamps drivers hand back for aggregate
// columns (SQLite text storage, MySQL without parseTime, RFC3339 from pgx).
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	dayLayout,
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return parseTimestamp(t)
	case []byte:
		return parseTimestamp(string(t))
	}
	return time.Time{}, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case []byte:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprint(v)
}

// normalizeValue makes driver values JSON friendly.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// toRecord converts a scanned row into an AuditRecord tagged with its table.
// Columns other than the audit bookkeeping ones become the payload.
func toRecord(tbl registry.Table, row map[string]any) models.AuditRecord {
	rec := models.AuditRecord{
		SourceTable: tbl.Name,
		TableLabel:  tbl.Label,
		Payload:     datatypes.JSONMap{},
	}

	for col, v := range row {
		switch col {
		case registry.ColumnAuditID:
			rec.AuditID, _ = toInt64(v)
		case registry.ColumnAction:
			rec.Action = models.AuditAction(strings.ToUpper(toString(v)))
		case registry.ColumnActor:
			if id, ok := toInt64(v); ok {
				rec.ActorID = &id
			}
		case registry.ColumnModifiedAt:
			rec.ModifiedAt, _ = toTime(v)
		case registry.ColumnIP:
			rec.IP = toString(v)
		default:
			rec.Payload[col] = normalizeValue(v)
		}
	}
	return rec
}
