package report

import (
	"fmt"
	"time"
)

const errorMessageLimit = 100

// SummaryRow is one table line of a summary report. A non-empty Err marks a
// table that could not be counted.
type SummaryRow struct {
	Label   string
	Total   int64
	Inserts int64
	Updates int64
	Deletes int64
	Err     string
}

// DetailRow is one audit record line of a detailed report.
type DetailRow struct {
	At          time.Time
	Table       string
	Action      string
	ActionLabel string
	Actor       string
	Record      string
	IP          string
}

// ActorRow is one actor line of a by-actor report.
type ActorRow struct {
	Actor        string
	Total        int64
	Inserts      int64
	Updates      int64
	Deletes      int64
	LastActivity time.Time
}

var summaryColumns = []column{
	{"Tabla", 32},
	{"Total", 12},
	{"Creaciones", 14},
	{"Modificaciones", 16},
	{"Eliminaciones", 15},
}

var detailColumns = []column{
	{"Fecha/Hora", 20},
	{"Tabla", 24},
	{"Acción", 15},
	{"Usuario", 22},
	{"Registro Afectado", 40},
	{"IP", 16},
}

var actorColumns = []column{
	{"Usuario", 28},
	{"Total Acciones", 15},
	{"Creaciones", 14},
	{"Modificaciones", 16},
	{"Eliminaciones", 15},
	{"Última Actividad", 20},
}

// Summary renders per-table counts followed by a totals row. Rows with an
// error show the message and count as zero.
func Summary(filename string, h Header, rows []SummaryRow) (*Workbook, error) {
	w, err := newSheet("Resumen", summaryColumns)
	if err != nil {
		return nil, err
	}
	if err := w.writeHeader(h); err != nil {
		return nil, w.fail(err)
	}
	if err := w.writeColumns(summaryColumns); err != nil {
		return nil, w.fail(err)
	}

	var total SummaryRow
	row := headerRow + 1
	for i, r := range rows {
		if r.Err != "" {
			values := []any{r.Label, "Error: " + truncate(r.Err, errorMessageLimit)}
			if err := w.writeRow(row, values, w.styles.errorRow); err != nil {
				return nil, w.fail(err)
			}
			row++
			continue
		}

		values := []any{r.Label, r.Total, r.Inserts, r.Updates, r.Deletes}
		if err := w.writeRow(row, values, w.styles.striped(i)); err != nil {
			return nil, w.fail(err)
		}
		total.Total += r.Total
		total.Inserts += r.Inserts
		total.Updates += r.Updates
		total.Deletes += r.Deletes
		row++
	}

	totals := []any{"TOTAL", total.Total, total.Inserts, total.Updates, total.Deletes}
	if err := w.writeRow(row, totals, w.styles.totals); err != nil {
		return nil, w.fail(err)
	}
	return w.finish(filename, len(rows)), nil
}

// Detailed renders one action-tinted line per audit record.
func Detailed(filename string, h Header, rows []DetailRow) (*Workbook, error) {
	w, err := newSheet("Detalle", detailColumns)
	if err != nil {
		return nil, err
	}
	if err := w.writeHeader(h); err != nil {
		return nil, w.fail(err)
	}
	if err := w.writeColumns(detailColumns); err != nil {
		return nil, w.fail(err)
	}

	for i, r := range rows {
		values := []any{
			r.At.Format(dateTimeLayout),
			r.Table,
			r.ActionLabel,
			r.Actor,
			r.Record,
			r.IP,
		}
		if err := w.writeRow(headerRow+1+i, values, w.styles.action(r.Action)); err != nil {
			return nil, w.fail(err)
		}
	}
	return w.finish(filename, len(rows)), nil
}

// ByActor renders per-actor activity followed by a totals row, or a notice
// when there is nothing to show.
func ByActor(filename string, h Header, rows []ActorRow) (*Workbook, error) {
	w, err := newSheet("Por Usuario", actorColumns)
	if err != nil {
		return nil, err
	}
	if err := w.writeHeader(h); err != nil {
		return nil, w.fail(err)
	}

	if len(rows) == 0 {
		if err := w.writeNotice(headerRow, noDataMessage); err != nil {
			return nil, w.fail(err)
		}
		return w.finish(filename, 0), nil
	}

	if err := w.writeColumns(actorColumns); err != nil {
		return nil, w.fail(err)
	}

	var total ActorRow
	for i, r := range rows {
		values := []any{
			r.Actor,
			r.Total,
			r.Inserts,
			r.Updates,
			r.Deletes,
			r.LastActivity.Format(dateTimeLayout),
		}
		if err := w.writeRow(headerRow+1+i, values, w.styles.striped(i)); err != nil {
			return nil, w.fail(err)
		}
		total.Total += r.Total
		total.Inserts += r.Inserts
		total.Updates += r.Updates
		total.Deletes += r.Deletes
	}

	totals := []any{
		fmt.Sprintf("TOTAL (%d usuarios)", len(rows)),
		total.Total,
		total.Inserts,
		total.Updates,
		total.Deletes,
		"",
	}
	if err := w.writeRow(headerRow+1+len(rows), totals, w.styles.totals); err != nil {
		return nil, w.fail(err)
	}
	return w.finish(filename, len(rows)), nil
}
