package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func testHeader() Header {
	return Header{
		Organization: "MAGIC TRAVEL GUATEMALA",
		Title:        "REPORTE DE AUDITORÍA - RESUMEN",
		From:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		GeneratedAt:  time.Date(2024, 2, 1, 9, 5, 7, 0, time.UTC),
	}
}

// reopen streams wb and parses it back.
func reopen(t *testing.T, wb *Workbook) *excelize.File {
	t.Helper()

	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatalf("failed to close workbook: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()

	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("failed to read %s: %v", cell, err)
	}
	return v
}

func cellStyle(t *testing.T, f *excelize.File, sheet, cell string) *excelize.Style {
	t.Helper()

	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		t.Fatalf("failed to read style of %s: %v", cell, err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		t.Fatalf("failed to resolve style %d: %v", id, err)
	}
	return style
}

func hasFill(style *excelize.Style, color string) bool {
	for _, c := range style.Fill.Color {
		if strings.HasSuffix(strings.ToUpper(c), color) {
			return true
		}
	}
	return false
}

func TestFilename(t *testing.T) {
	got := Filename("detailed", time.Date(2024, 3, 9, 14, 2, 1, 0, time.UTC))
	if got != "reporte_auditoria_detailed_20240309_140201.xlsx" {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestHeader(t *testing.T) {
	t.Run("no_filters", func(t *testing.T) {
		wb, err := Summary("a.xlsx", testHeader(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := reopen(t, wb)

		want := map[string]string{
			"A1": "MAGIC TRAVEL GUATEMALA",
			"A2": "REPORTE DE AUDITORÍA - RESUMEN",
			"A3": "Período: 01/01/2024 - 31/01/2024",
			"A4": "Generado: 01/02/2024 09:05:07",
			"A5": "Filtros: ninguno",
		}
		for cell, v := range want {
			if got := cellValue(t, f, "Resumen", cell); got != v {
				t.Errorf("%s: expected %q, got %q", cell, v, got)
			}
		}
	})

	t.Run("with_filters", func(t *testing.T) {
		h := testHeader()
		h.Filters = []string{"Tabla: Reservas", "Acción: Creación"}
		wb, err := Summary("a.xlsx", h, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := reopen(t, wb)

		if got := cellValue(t, f, "Resumen", "A5"); got != "Filtros: Tabla: Reservas | Acción: Creación" {
			t.Errorf("unexpected filters line %q", got)
		}
	})
}

func TestSummary(t *testing.T) {
	t.Run("rows_and_totals", func(t *testing.T) {
		rows := []SummaryRow{
			{Label: "Reservas", Total: 5, Inserts: 3, Updates: 2},
			{Label: "Vehículos", Total: 1, Deletes: 1},
		}
		wb, err := Summary("resumen.xlsx", testHeader(), rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wb.Filename != "resumen.xlsx" || wb.Rows != 2 {
			t.Errorf("unexpected workbook metadata: %q %d", wb.Filename, wb.Rows)
		}
		f := reopen(t, wb)

		header := []string{"Tabla", "Total", "Creaciones", "Modificaciones", "Eliminaciones"}
		for i, want := range header {
			cell, _ := excelize.CoordinatesToCellName(i+1, 7)
			if got := cellValue(t, f, "Resumen", cell); got != want {
				t.Errorf("%s: expected %q, got %q", cell, want, got)
			}
		}

		expect := [][]string{
			{"Reservas", "5", "3", "2", "0"},
			{"Vehículos", "1", "0", "0", "1"},
			{"TOTAL", "6", "3", "2", "1"},
		}
		for r, line := range expect {
			for c, want := range line {
				cell, _ := excelize.CoordinatesToCellName(c+1, 8+r)
				if got := cellValue(t, f, "Resumen", cell); got != want {
					t.Errorf("%s: expected %q, got %q", cell, want, got)
				}
			}
		}

		hs := cellStyle(t, f, "Resumen", "A7")
		if hs.Font == nil || !hs.Font.Bold {
			t.Error("expected bold header font")
		}
		if !hasFill(hs, ColorHeaderFill) {
			t.Errorf("expected header fill %s, got %v", ColorHeaderFill, hs.Fill.Color)
		}
		if len(hs.Border) != 4 {
			t.Errorf("expected four borders on header cells, got %d", len(hs.Border))
		}
		if !hasFill(cellStyle(t, f, "Resumen", "A9"), ColorZebraFill) {
			t.Error("expected zebra fill on the second data row")
		}
		if !hasFill(cellStyle(t, f, "Resumen", "B10"), ColorTotalsFill) {
			t.Error("expected totals fill on the totals row")
		}
	})

	t.Run("error_row", func(t *testing.T) {
		long := strings.Repeat("x", 150)
		rows := []SummaryRow{
			{Label: "Reservas", Total: 2, Inserts: 2},
			{Label: "Rutas", Err: long},
		}
		wb, err := Summary("resumen.xlsx", testHeader(), rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := reopen(t, wb)

		if got := cellValue(t, f, "Resumen", "B9"); got != "Error: "+strings.Repeat("x", 100) {
			t.Errorf("unexpected error cell %q", got)
		}
		if got := cellValue(t, f, "Resumen", "B10"); got != "2" {
			t.Errorf("expected failing table to add nothing to the total, got %q", got)
		}
	})
}

func TestDetailed(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	rows := []DetailRow{
		{At: at, Table: "Reservas", Action: "INSERT", ActionLabel: "Creación", Actor: "Sistema", Record: "Ana López", IP: "10.0.0.1"},
		{At: at, Table: "Vehículos", Action: "UPDATE", ActionLabel: "Modificación", Actor: "operador1", Record: "P-123ABC"},
		{At: at, Table: "Rutas", Action: "DELETE", ActionLabel: "Eliminación", Actor: "Usuario #9", Record: "Antigua Flores"},
	}
	wb, err := Detailed("detalle.xlsx", testHeader(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := reopen(t, wb)

	want := []string{"15/01/2024 10:30:00", "Reservas", "Creación", "Sistema", "Ana López", "10.0.0.1"}
	for i, v := range want {
		cell, _ := excelize.CoordinatesToCellName(i+1, 8)
		if got := cellValue(t, f, "Detalle", cell); got != v {
			t.Errorf("%s: expected %q, got %q", cell, v, got)
		}
	}

	tints := map[string]string{"A8": ColorInsertFill, "A9": ColorUpdateFill, "A10": ColorDeleteFill}
	for cell, color := range tints {
		if !hasFill(cellStyle(t, f, "Detalle", cell), color) {
			t.Errorf("%s: expected fill %s", cell, color)
		}
	}
}

func TestByActor(t *testing.T) {
	t.Run("rows_and_totals", func(t *testing.T) {
		last := time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC)
		rows := []ActorRow{
			{Actor: "operador1", Total: 4, Inserts: 2, Updates: 1, Deletes: 1, LastActivity: last},
			{Actor: "Sistema", Total: 1, Inserts: 1, LastActivity: last},
		}
		wb, err := ByActor("usuarios.xlsx", testHeader(), rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := reopen(t, wb)

		if got := cellValue(t, f, "Por Usuario", "F8"); got != "20/01/2024 08:00:00" {
			t.Errorf("unexpected last activity %q", got)
		}
		if got := cellValue(t, f, "Por Usuario", "A10"); got != "TOTAL (2 usuarios)" {
			t.Errorf("unexpected totals label %q", got)
		}
		if got := cellValue(t, f, "Por Usuario", "B10"); got != "5" {
			t.Errorf("expected total 5, got %q", got)
		}
	})

	t.Run("no_data", func(t *testing.T) {
		wb, err := ByActor("usuarios.xlsx", testHeader(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := reopen(t, wb)

		if got := cellValue(t, f, "Por Usuario", "A7"); got != noDataMessage {
			t.Errorf("expected notice, got %q", got)
		}
		if got := cellValue(t, f, "Por Usuario", "A8"); got != "" {
			t.Errorf("expected nothing below the notice, got %q", got)
		}
	})
}
