package handler

import (
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timeclock/timeclock-api/internal/api/metrics"
	"github.com/timeclock/timeclock-api/internal/core/ports"
)

const formatJSON = "json"

// ReportHandler serves monthly hour reports as JSON or as documents.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Monthly handles GET /v1/reports/monthly.
//
// @Summary      Monthly hours report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  true  "Year (e.g. 2025)"
// @Param        month  query     int  true  "Month 1-12"
// @Success      200    {object}  monthlyReportResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/reports/monthly [get]
func (h *ReportHandler) Monthly(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req monthlyReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start := time.Now()
	m, err := h.service.Monthly(c.Request().Context(), userID, req.Year, req.Month)
	if err != nil {
		return err
	}
	observeReport(formatJSON, start)

	return c.JSON(http.StatusOK, toMonthlyReportResponse(m))
}

// Export handles GET /v1/reports/monthly/export.
//
// @Summary      Download the monthly report
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Security     BearerAuth
// @Param        year    query     int     true  "Year (e.g. 2025)"
// @Param        month   query     int     true  "Month 1-12"
// @Param        format  query     string  true  "xlsx or docx"
// @Success      200     {file}    binary
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/reports/monthly/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req exportReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start := time.Now()
	file, err := h.service.Export(c.Request().Context(), userID, req.Year, req.Month, req.Format)
	if err != nil {
		return err
	}
	observeReport(strings.ToLower(strings.TrimSpace(req.Format)), start)

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename})
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}

func observeReport(format string, start time.Time) {
	metrics.ReportsGeneratedTotal.WithLabelValues(format).Inc()
	metrics.ReportBuildDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}
