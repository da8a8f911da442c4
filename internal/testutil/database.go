// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"magictravel/internal/models"
	"magictravel/internal/registry"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

// SetupTestDB creates an isolated in-memory SQLite database containing every
// registry audit table and the usuario table.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:auditdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	for _, tbl := range registry.All() {
		if err := db.Exec(AuditTableDDL(tbl)).Error; err != nil {
			t.Fatalf("failed to create %s: %v", tbl.Name, err)
		}
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// AuditTableDDL returns a SQLite CREATE TABLE statement for an audit table,
// with the common audit columns plus the entity columns the service reads.
func AuditTableDDL(tbl registry.Table) string {
	cols := []string{
		registry.ColumnAuditID + " INTEGER PRIMARY KEY",
	}
	for i, c := range registry.Columns(tbl.Entity) {
		if i == 0 {
			cols = append(cols, c+" INTEGER")
			continue
		}
		cols = append(cols, c+" TEXT")
	}
	cols = append(cols,
		registry.ColumnAction+" TEXT NOT NULL",
		registry.ColumnActor+" INTEGER",
		registry.ColumnModifiedAt+" DATETIME NOT NULL",
		registry.ColumnIP+" TEXT",
	)
	return fmt.Sprintf("CREATE TABLE %s (%s)", tbl.Name, strings.Join(cols, ", "))
}

// DropTable removes a table, simulating schema drift in fan-out tests.
func DropTable(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	if err := db.Migrator().DropTable(table); err != nil {
		t.Fatalf("failed to drop %s: %v", table, err)
	}
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
