package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/timeclock/timeclock-api/internal/core/ports"
	"github.com/timeclock/timeclock-api/internal/core/report"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxSheet       = "Monthly Report"
	xlsxHeaderRow   = 3

	// builtin excelize number format "0.00"
	numFmtTwoDecimals = 2
)

// XLSXRenderer renders reports as Excel workbooks.
type XLSXRenderer struct {
	loc *time.Location
}

func NewXLSXRenderer(loc *time.Location) *XLSXRenderer {
	return &XLSXRenderer{loc: location(loc)}
}

type xlsxStyles struct {
	title, header, cell, hours, dayTotal, monthTotal int
}

func (r *XLSXRenderer) Render(m report.Month) (*ports.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	st, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: xlsxSheet}

	w.set("A1", title(m), st.title)
	w.merge("A1", "C1")

	w.row(xlsxHeaderRow, st.header, st.header, labelDate, labelPeriod, labelHours)

	row := xlsxHeaderRow + 1
	for _, l := range lines(m, r.loc) {
		switch l.kind {
		case lineSession:
			w.row(row, st.cell, st.hours, l.date, l.period, l.hours)
			row++
		case lineDayTotal:
			w.row(row, st.dayTotal, st.dayTotal, "", l.period, l.hours)
			// blank row between days
			row += 2
		}
	}
	w.row(row, st.monthTotal, st.monthTotal, "", labelMonthTotal, m.Total)

	w.width("A", 16)
	w.width("B", 26)
	w.width("C", 14)

	if w.err != nil {
		return nil, fmt.Errorf("xlsx write: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx encode: %w", err)
	}

	return &ports.ExportFile{
		Filename:    filename(m, ports.FormatXLSX),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	sides := thin[:2]
	double := []excelize.Border{
		{Type: "top", Color: "000000", Style: 6},
		{Type: "bottom", Color: "000000", Style: 6},
	}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: 14, Color: "1F2937"},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		{
			Font:      &excelize.Font{Bold: true},
			Fill:      fill("E5E7EB"),
			Border:    thin,
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		{Border: sides},
		{Border: sides, NumFmt: numFmtTwoDecimals},
		{
			Font:   &excelize.Font{Bold: true},
			Fill:   fill("D1D5DB"),
			Border: thin[2:],
			NumFmt: numFmtTwoDecimals,
		},
		{
			Font:   &excelize.Font{Bold: true},
			Fill:   fill("DBEAFE"),
			Border: double,
			NumFmt: numFmtTwoDecimals,
		},
	}

	var st xlsxStyles
	targets := []*int{&st.title, &st.header, &st.cell, &st.hours, &st.dayTotal, &st.monthTotal}
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return st, fmt.Errorf("xlsx style: %w", err)
		}
		*targets[i] = id
	}
	return st, nil
}

// sheetWriter remembers the first error so the layout code reads top to bottom.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, value any, style int) {
	if w.err != nil {
		return
	}
	if w.err = w.f.SetCellValue(w.sheet, cell, value); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
}

// row writes a three-column row; the last column gets valueStyle.
func (w *sheetWriter) row(n, style, valueStyle int, date, period string, value any) {
	w.set(cellName("A", n), date, style)
	w.set(cellName("B", n), period, style)
	w.set(cellName("C", n), value, valueStyle)
}

func (w *sheetWriter) merge(from, to string) {
	if w.err == nil {
		w.err = w.f.MergeCell(w.sheet, from, to)
	}
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(w.sheet, col, col, width)
	}
}

func cellName(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
