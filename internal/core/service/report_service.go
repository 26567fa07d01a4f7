package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/timeclock/timeclock-api/internal/core/domain"
	"github.com/timeclock/timeclock-api/internal/core/ports"
	"github.com/timeclock/timeclock-api/internal/core/report"
)

// ReportService builds monthly reports from the user's work sessions.
type ReportService struct {
	repo      ports.WorkSessionRepository
	renderers map[string]ports.ReportRenderer
	logger    zerolog.Logger
}

// NewReportService wires the repository and the export renderers, keyed by
// format name (see ports.FormatXLSX, ports.FormatDOCX).
func NewReportService(repo ports.WorkSessionRepository, renderers map[string]ports.ReportRenderer, logger zerolog.Logger) *ReportService {
	if renderers == nil {
		renderers = map[string]ports.ReportRenderer{}
	}
	return &ReportService{repo: repo, renderers: renderers, logger: logger}
}

// Monthly returns the day-keyed hours report for the given month.
func (s *ReportService) Monthly(ctx context.Context, userID string, year, month int) (*report.Month, error) {
	if err := report.ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	from, to := report.MonthRange(year, month)
	sessions, err := s.repo.ListByCalendarDate(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}

	m := report.Summarize(sessions)
	m.Year = year
	m.Month = time.Month(month)
	return &m, nil
}

// Export renders the monthly report in the requested format.
func (s *ReportService) Export(ctx context.Context, userID string, year, month int, format string) (*ports.ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	m, err := s.Monthly(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	file, err := renderer.Render(*m)
	if err != nil {
		s.logger.Error().Err(err).Str("format", format).Str("user_id", userID).Msg("failed to render report")
		return nil, fmt.Errorf("export report: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("format", format).
		Int("year", year).
		Int("month", month).
		Int("bytes", len(file.Data)).
		Msg("report exported")

	return file, nil
}
