package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/timeclock/timeclock-api/internal/core/ports"
	"github.com/timeclock/timeclock-api/internal/core/report"
)

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxTableStyle  = "LightList-Accent1"
	colorTotal      = "1E40AF"
)

// DOCXRenderer renders reports as Word documents: a title heading, one table
// of sessions and day totals, and a closing month total paragraph.
type DOCXRenderer struct {
	loc *time.Location
}

func NewDOCXRenderer(loc *time.Location) *DOCXRenderer {
	return &DOCXRenderer{loc: location(loc)}
}

func (r *DOCXRenderer) Render(m report.Month) (*ports.ExportFile, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("docx new document: %w", err)
	}

	if _, err := doc.AddHeading(strings.ToUpper(title(m)), 1); err != nil {
		return nil, fmt.Errorf("docx heading: %w", err)
	}

	tbl := doc.AddTable()
	tbl.Style(docxTableStyle)
	addRow(tbl, true, labelDate, labelPeriod, labelHours)
	for _, l := range lines(m, r.loc) {
		switch l.kind {
		case lineSession:
			addRow(tbl, false, l.date, l.period, formatHours(l.hours))
		case lineDayTotal:
			addRow(tbl, true, "", l.period, formatHours(l.hours))
		}
	}

	doc.AddEmptyParagraph()
	doc.AddEmptyParagraph().
		AddText(fmt.Sprintf("%s: %s hours", labelMonthTotal, formatHours(m.Total))).
		Bold(true).
		Color(colorTotal)

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("docx encode: %w", err)
	}

	return &ports.ExportFile{
		Filename:    filename(m, ports.FormatDOCX),
		ContentType: docxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func addRow(tbl *docx.Table, bold bool, cells ...string) {
	row := tbl.AddRow()
	for _, text := range cells {
		row.AddCell().AddEmptyPara().AddText(text).Bold(bold)
	}
}
