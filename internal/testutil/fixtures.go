package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"magictravel/internal/models"
	"magictravel/internal/registry"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// AuditRow describes an audit fixture. Zero values get sensible defaults:
// INSERT, system actor, and the current time.
type AuditRow struct {
	Action     models.AuditAction
	ActorID    *int64
	ModifiedAt time.Time
	IP         string
	Fields     map[string]any
}

// Int64 returns a pointer to v, for optional fixture fields.
func Int64(v int64) *int64 { return &v }

// CreateAuditRow inserts one row into an audit table and returns its auditoria_id.
func CreateAuditRow(t *testing.T, db *gorm.DB, table string, row AuditRow) int64 {
	t.Helper()

	if row.Action == "" {
		row.Action = models.AuditActionInsert
	}
	if row.ModifiedAt.IsZero() {
		row.ModifiedAt = time.Now().UTC().Truncate(time.Second)
	}

	id := nextID()
	values := map[string]any{
		registry.ColumnAuditID:    id,
		registry.ColumnAction:     string(row.Action),
		registry.ColumnModifiedAt: row.ModifiedAt,
	}
	if row.ActorID != nil {
		values[registry.ColumnActor] = *row.ActorID
	}
	if row.IP != "" {
		values[registry.ColumnIP] = row.IP
	}
	for k, v := range row.Fields {
		values[k] = v
	}

	if err := db.Table(table).Create(values).Error; err != nil {
		t.Fatalf("failed to create %s fixture: %v", table, err)
	}
	return id
}

// CreateAuditRows inserts n rows with the same shape into a table.
func CreateAuditRows(t *testing.T, db *gorm.DB, table string, n int, row AuditRow) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, CreateAuditRow(t, db, table, row))
	}
	return ids
}

// CreateTestUser creates a usuario row with a unique alias.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	user := &models.User{
		ID:     n,
		Code:   fmt.Sprintf("USR-%03d", n),
		Alias:  fmt.Sprintf("operador%d", n),
		Active: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
