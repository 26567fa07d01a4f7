package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/timeclock/timeclock-api/internal/core/domain"
	"github.com/timeclock/timeclock-api/internal/core/ports"
	"github.com/timeclock/timeclock-api/internal/core/report"
)

func closed(date string, start, end time.Time) domain.WorkSession {
	d, _ := time.Parse(domain.DateLayout, date)
	return domain.WorkSession{CalendarDate: d, StartTime: start, EndTime: &end}
}

// marchReport: 3 Mar 09:00-12:30, 4 Mar 08:00-08:45 (UTC-3), plus an open session on 5 Mar.
func marchReport(t *testing.T, loc *time.Location) report.Month {
	t.Helper()
	at := func(day, hour, min int) time.Time {
		return time.Date(2025, 3, day, hour, min, 0, 0, loc)
	}
	open := domain.WorkSession{
		CalendarDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		StartTime:    at(5, 9, 0),
	}
	m, err := report.Build(2025, 3, []domain.WorkSession{
		closed("2025-03-03", at(3, 9, 0), at(3, 12, 30)),
		closed("2025-03-04", at(4, 8, 0), at(4, 8, 45)),
		open,
	})
	require.NoError(t, err)
	return m
}

func saoPaulo() *time.Location {
	return time.FixedZone("BRT", -3*60*60)
}

func TestLines(t *testing.T) {
	loc := saoPaulo()
	got := lines(marchReport(t, loc), loc)

	want := []line{
		{kind: lineSession, date: "03/03/2025", period: "09:00 - 12:30", hours: 3.5},
		{kind: lineDayTotal, period: labelDayTotal, hours: 3.5},
		{kind: lineSession, date: "04/03/2025", period: "08:00 - 08:45", hours: 0.75},
		{kind: lineDayTotal, period: labelDayTotal, hours: 0.75},
		{kind: lineDayTotal, period: labelDayTotal, hours: 0},
	}
	assert.Equal(t, want, got)
}

func TestFilenameAndTitle(t *testing.T) {
	m := report.Month{Year: 2025, Month: time.March}
	assert.Equal(t, "hours-report-2025-03.xlsx", filename(m, ports.FormatXLSX))
	assert.Equal(t, "Hours Report - March / 2025", title(m))
}

func TestXLSXRenderer_Render(t *testing.T) {
	loc := saoPaulo()
	file, err := NewXLSXRenderer(loc).Render(marchReport(t, loc))
	require.NoError(t, err)

	assert.Equal(t, "hours-report-2025-03.xlsx", file.Filename)
	assert.Equal(t, xlsxContentType, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	cell := func(row, col int) string {
		if row-1 >= len(rows) || col-1 >= len(rows[row-1]) {
			return ""
		}
		return rows[row-1][col-1]
	}

	assert.Equal(t, "Hours Report - March / 2025", cell(1, 1))
	assert.Equal(t, []string{"Date", "Period", "Hours"}, rows[2])

	assert.Equal(t, "03/03/2025", cell(4, 1))
	assert.Equal(t, "09:00 - 12:30", cell(4, 2))
	assert.Equal(t, "3.5", cell(4, 3))
	assert.Equal(t, "DAY TOTAL", cell(5, 2))
	assert.Equal(t, "3.5", cell(5, 3))

	assert.Equal(t, "04/03/2025", cell(7, 1))
	assert.Equal(t, "0.75", cell(7, 3))
	assert.Equal(t, "DAY TOTAL", cell(8, 2))

	assert.Equal(t, "DAY TOTAL", cell(10, 2))
	assert.Equal(t, "0", cell(10, 3))

	assert.Equal(t, "MONTH TOTAL", cell(12, 2))
	assert.Equal(t, "4.25", cell(12, 3))
}

func TestXLSXRenderer_EmptyMonth(t *testing.T) {
	m, err := report.Build(2025, 2, nil)
	require.NoError(t, err)

	file, err := NewXLSXRenderer(nil).Render(m)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(xlsxSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "MONTH TOTAL", v)
}

func readZipPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestDOCXRenderer_Render(t *testing.T) {
	loc := saoPaulo()
	file, err := NewDOCXRenderer(loc).Render(marchReport(t, loc))
	require.NoError(t, err)

	assert.Equal(t, "hours-report-2025-03.docx", file.Filename)
	assert.Equal(t, docxContentType, file.ContentType)

	assert.Contains(t, readZipPart(t, file.Data, "[Content_Types].xml"), "/word/document.xml")

	doc := readZipPart(t, file.Data, "word/document.xml")
	for _, want := range []string{
		"HOURS REPORT - MARCH / 2025",
		">Date<", ">Period<", ">Hours<",
		">03/03/2025<", ">09:00 - 12:30<", ">3.50<",
		">04/03/2025<", ">08:00 - 08:45<", ">0.75<",
		">DAY TOTAL<", ">0.00<",
		"MONTH TOTAL: 4.25 hours",
	} {
		assert.Contains(t, doc, want)
	}
}

func TestDOCXRenderer_TableHasGrid(t *testing.T) {
	loc := saoPaulo()
	file, err := NewDOCXRenderer(loc).Render(marchReport(t, loc))
	require.NoError(t, err)

	doc := readZipPart(t, file.Data, "word/document.xml")
	tblPr := strings.Index(doc, "<w:tblPr")
	grid := strings.Index(doc, "<w:tblGrid")
	firstRow := strings.Index(doc, "<w:tr")
	require.NotEqual(t, -1, grid, "table must declare a grid")
	assert.Less(t, tblPr, grid)
	assert.Less(t, grid, firstRow)
}

func TestDOCXRenderer_EmptyMonth(t *testing.T) {
	m, err := report.Build(2025, 2, nil)
	require.NoError(t, err)

	file, err := NewDOCXRenderer(nil).Render(m)
	require.NoError(t, err)

	doc := readZipPart(t, file.Data, "word/document.xml")
	assert.Contains(t, doc, ">Date<")
	assert.NotContains(t, doc, ">DAY TOTAL<")
	assert.Contains(t, doc, "MONTH TOTAL: 0.00 hours")
}
