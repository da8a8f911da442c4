// Package report renders audit reports as XLSX workbooks.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"

	// headerRow is the row holding the column titles; data starts below it.
	headerRow = 7

	noDataMessage = "No se encontraron registros para los filtros seleccionados."
)

// Header is the document header shared by every report kind.
type Header struct {
	Organization string
	Title        string
	From         time.Time
	To           time.Time
	GeneratedAt  time.Time
	Filters      []string
}

// Workbook is a fully built report ready to be streamed.
type Workbook struct {
	Filename string
	Sheet    string
	Rows     int
	file     *excelize.File
}

// WriteTo streams the workbook in XLSX format.
func (w *Workbook) WriteTo(dst io.Writer) (int64, error) {
	return w.file.WriteTo(dst)
}

// Close releases the workbook's resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Filename returns the attachment name for a report kind generated at t.
func Filename(kind string, t time.Time) string {
	return fmt.Sprintf("reporte_auditoria_%s_%s.xlsx", kind, t.Format("20060102_150405"))
}

// sheetWriter wraps an excelize sheet with the report styles.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles *styles
	cols   int
}

func newSheet(name string, columns []column) (*sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		f.Close()
		return nil, err
	}

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: name, styles: st, cols: len(columns)}
	for i, c := range columns {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(name, colName, colName, c.width); err != nil {
			f.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *sheetWriter) cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// writeHeader fills rows 1 to 5 with the document header.
func (w *sheetWriter) writeHeader(h Header) error {
	filters := "ninguno"
	if len(h.Filters) > 0 {
		filters = strings.Join(h.Filters, " | ")
	}

	lines := []struct {
		text  string
		style int
	}{
		{h.Organization, w.styles.org},
		{h.Title, w.styles.title},
		{fmt.Sprintf("Período: %s - %s", h.From.Format(dateLayout), h.To.Format(dateLayout)), w.styles.meta},
		{"Generado: " + h.GeneratedAt.Format(dateTimeLayout), w.styles.meta},
		{"Filtros: " + filters, w.styles.meta},
	}

	last := w.cols
	if last < 1 {
		last = 1
	}
	for i, line := range lines {
		row := i + 1
		start, end := w.cell(1, row), w.cell(last, row)
		if err := w.f.SetCellValue(w.sheet, start, line.text); err != nil {
			return err
		}
		if last > 1 {
			if err := w.f.MergeCell(w.sheet, start, end); err != nil {
				return err
			}
		}
		if err := w.f.SetCellStyle(w.sheet, start, end, line.style); err != nil {
			return err
		}
	}
	return nil
}

// writeColumns writes the column titles on the header row.
func (w *sheetWriter) writeColumns(columns []column) error {
	titles := make([]any, len(columns))
	for i, c := range columns {
		titles[i] = c.title
	}
	return w.writeRow(headerRow, titles, w.styles.columnHeader)
}

func (w *sheetWriter) writeRow(row int, values []any, style int) error {
	start := w.cell(1, row)
	if err := w.f.SetSheetRow(w.sheet, start, &values); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, start, w.cell(len(values), row), style)
}

// writeNotice writes a single merged message in place of a table.
func (w *sheetWriter) writeNotice(row int, text string) error {
	start, end := w.cell(1, row), w.cell(w.cols, row)
	if err := w.f.SetCellValue(w.sheet, start, text); err != nil {
		return err
	}
	if err := w.f.MergeCell(w.sheet, start, end); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, start, end, w.styles.notice)
}

func (w *sheetWriter) finish(filename string, rows int) *Workbook {
	return &Workbook{Filename: filename, Sheet: w.sheet, Rows: rows, file: w.f}
}

// fail closes the underlying file and returns err.
func (w *sheetWriter) fail(err error) error {
	w.f.Close()
	return err
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
