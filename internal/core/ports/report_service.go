package ports

import (
	"context"

	"github.com/timeclock/timeclock-api/internal/core/report"
)

const (
	FormatXLSX = "xlsx"
	FormatDOCX = "docx"
)

// ExportFile is a rendered report ready to be streamed to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportRenderer turns a month report into a binary document.
type ReportRenderer interface {
	Render(m report.Month) (*ExportFile, error)
}

// ReportService builds monthly hour reports.
type ReportService interface {
	Monthly(ctx context.Context, userID string, year, month int) (*report.Month, error)
	Export(ctx context.Context, userID string, year, month int, format string) (*ExportFile, error)
}
