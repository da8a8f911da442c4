package report

import "github.com/xuri/excelize/v2"

// Colors used across report sheets.
const (
	ColorHeaderFill = "1F4E78"
	ColorHeaderFont = "FFFFFF"
	ColorTotalsFill = "D9E1F2"
	ColorZebraFill  = "F2F2F2"
	ColorInsertFill = "E8F5E9"
	ColorUpdateFill = "FFF8E1"
	ColorDeleteFill = "FFEBEE"
)

type column struct {
	title string
	width float64
}

type styles struct {
	org          int
	title        int
	meta         int
	notice       int
	columnHeader int
	row          int
	zebra        int
	totals       int
	errorRow     int
	actionRows   map[string]int
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "right", "bottom"}
	out := make([]excelize.Border, len(sides))
	for i, side := range sides {
		out[i] = excelize.Border{Type: side, Color: "BFBFBF", Style: 1}
	}
	return out
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func newStyles(f *excelize.File) (*styles, error) {
	st := &styles{actionRows: map[string]int{}}

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.org, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
		{&st.meta, &excelize.Style{Font: &excelize.Font{Size: 10}}},
		{&st.notice, &excelize.Style{
			Font:      &excelize.Font{Italic: true},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&st.columnHeader, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: ColorHeaderFont},
			Fill:      solidFill(ColorHeaderFill),
			Border:    thinBorders(),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&st.row, &excelize.Style{Border: thinBorders()}},
		{&st.zebra, &excelize.Style{Border: thinBorders(), Fill: solidFill(ColorZebraFill)}},
		{&st.totals, &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   solidFill(ColorTotalsFill),
			Border: thinBorders(),
		}},
		{&st.errorRow, &excelize.Style{
			Font:   &excelize.Font{Color: "C00000"},
			Border: thinBorders(),
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, err
		}
		*d.dst = id
	}

	tints := map[string]string{
		"INSERT": ColorInsertFill,
		"UPDATE": ColorUpdateFill,
		"DELETE": ColorDeleteFill,
	}
	for action, color := range tints {
		id, err := f.NewStyle(&excelize.Style{Border: thinBorders(), Fill: solidFill(color)})
		if err != nil {
			return nil, err
		}
		st.actionRows[action] = id
	}
	return st, nil
}

// striped returns the zebra style for odd data rows.
func (s *styles) striped(i int) int {
	if i%2 == 1 {
		return s.zebra
	}
	return s.row
}

// action returns the tinted style for an action, or the plain row style.
func (s *styles) action(a string) int {
	if id, ok := s.actionRows[a]; ok {
		return id
	}
	return s.row
}
