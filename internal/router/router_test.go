package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"magictravel/internal/logger"
	"magictravel/internal/models"
	"magictravel/internal/services"
	"magictravel/internal/testutil"
	"magictravel/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	r := New(Deps{
		Audit:       services.NewAuditService(db),
		Reports:     services.NewReportService(db, services.ReportOptions{OrgName: "MAGIC TRAVEL GUATEMALA", Location: time.UTC}),
		CORSOrigins: []string{"*"},
		Ping: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		},
	})
	return &testApp{DB: db, Router: r}
}

func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		app := setupApp(t)
		rec := app.request(http.MethodGet, "/api/health", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["status"] != "ok" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("database_down", func(t *testing.T) {
		r := New(Deps{Ping: func() error { return errors.New("connection refused") }})
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t)
	app.request(http.MethodGet, "/api/v1/audits", "")

	rec := app.request(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "audit_http_requests_total") {
		t.Error("expected request counter in exposition")
	}
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t)
	rec := app.request(http.MethodGet, "/api/v1/nothing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["success"] != false || result["code"] != "NOT_FOUND" {
		t.Errorf("unexpected envelope %v", result)
	}
}

func TestAuditFlow(t *testing.T) {
	app := setupApp(t)
	actor := testutil.CreateTestUser(t, app.DB)
	base := time.Now().UTC().Truncate(time.Second)

	reservaID := testutil.CreateAuditRow(t, app.DB, "reserva_auditoria", testutil.AuditRow{
		Action:     models.AuditActionUpdate,
		ActorID:    &actor.ID,
		ModifiedAt: base.Add(time.Minute),
		Fields:     map[string]any{"reserva_codigo": "RES-0010", "reserva_nombres_cliente": "Ana"},
	})
	testutil.CreateAuditRow(t, app.DB, "vehiculo_auditoria", testutil.AuditRow{
		ModifiedAt: base,
		Fields:     map[string]any{"vehiculo_placa": "P-555ABC"},
	})
	old := testutil.CreateAuditRow(t, app.DB, "ruta_auditoria", testutil.AuditRow{
		Action:     models.AuditActionDelete,
		ModifiedAt: time.Now().UTC().AddDate(0, 0, -90),
	})

	t.Run("merged_feed", func(t *testing.T) {
		rec := app.request(http.MethodGet, "/api/v1/audits?per_page=2", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total"].(float64) != 3 || result["last_page"].(float64) != 2 {
			t.Errorf("unexpected page meta: %v", result)
		}
		data := result["data"].([]any)
		first := data[0].(map[string]any)
		if first["tabla_origen"] != "reserva_auditoria" {
			t.Errorf("expected newest record first, got %v", first["tabla_origen"])
		}
	})

	t.Run("huge_page_is_empty", func(t *testing.T) {
		rec := app.request(http.MethodGet, "/api/v1/audits?page=922337203685477582", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if len(result["data"].([]any)) != 0 || result["total"].(float64) != 3 {
			t.Errorf("expected an empty page past the end, got %v", result)
		}
	})

	t.Run("search_matches_literally", func(t *testing.T) {
		rec := app.request(http.MethodGet, "/api/v1/audits?busqueda=%25", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["total"].(float64) != 0 {
			t.Errorf("%% must not act as a wildcard: %s", rec.Body.String())
		}

		long := strings.Repeat("a", 150)
		rec = app.request(http.MethodGet, "/api/v1/audits?busqueda="+long, "")
		if rec.Code != http.StatusOK {
			t.Errorf("expected long search terms to be accepted, got %d", rec.Code)
		}
	})

	t.Run("table_feed_by_entity_key", func(t *testing.T) {
		rec := app.request(http.MethodGet, "/api/v1/audits/table/vehiculo", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["total"].(float64) != 1 {
			t.Errorf("expected one vehicle record: %s", rec.Body.String())
		}
	})

	t.Run("user_feed", func(t *testing.T) {
		rec := app.request(http.MethodGet, fmt.Sprintf("/api/v1/audits/user/%d", actor.ID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["total"].(float64) != 1 {
			t.Errorf("expected one record for actor: %s", rec.Body.String())
		}
	})

	t.Run("single_record", func(t *testing.T) {
		rec := app.request(http.MethodGet, fmt.Sprintf("/api/v1/audits/records/reserva/%d", reservaID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseJSON(t, rec)["data"].(map[string]any)
		if data["accion"] != "UPDATE" {
			t.Errorf("unexpected record %v", data)
		}

		rec = app.request(http.MethodGet, "/api/v1/audits/records/reserva/999999999", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("stats", func(t *testing.T) {
		rec := app.request(http.MethodGet, "/api/v1/audits/stats", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		data := parseJSON(t, rec)["data"].(map[string]any)
		if data["total_registros"].(float64) != 3 {
			t.Errorf("expected 3 records, got %v", data["total_registros"])
		}
		if n := len(data["actividad_ultimo_mes"].([]any)); n != 30 {
			t.Errorf("expected 30 daily buckets, got %d", n)
		}
	})

	t.Run("report_download", func(t *testing.T) {
		from := base.Format("2006-01-02")
		to := base.AddDate(0, 0, 1).Format("2006-01-02")
		body := fmt.Sprintf(`{"fecha_inicio":%q,"fecha_fin":%q,"tipo_reporte":"detailed"}`, from, to)
		rec := app.request(http.MethodPost, "/api/v1/audits/report", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		if err != nil {
			t.Fatalf("response is not a workbook: %v", err)
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		found := false
		for _, row := range rows {
			for _, cell := range row {
				if cell == actor.Alias {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("expected actor alias %q in detailed report", actor.Alias)
		}
	})

	t.Run("purge", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/api/v1/audits/purge", `{"dias":10}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for short retention, got %d", rec.Code)
		}

		rec = app.request(http.MethodPost, "/api/v1/audits/purge", `{"dias":30}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if msg := parseJSON(t, rec)["message"]; msg != "1 registros eliminados" {
			t.Errorf("unexpected message %v", msg)
		}

		var count int64
		app.DB.Table("ruta_auditoria").Where("auditoria_id = ?", old).Count(&count)
		if count != 0 {
			t.Error("old record should be purged")
		}
	})
}
