package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timeclock/timeclock-api/internal/api/metrics"
	"github.com/timeclock/timeclock-api/internal/core/domain"
	"github.com/timeclock/timeclock-api/internal/core/ports"
)

// WorkLogHandler handles clock-in, clock-out and the daily session views.
type WorkLogHandler struct {
	service ports.WorkLogService
}

func NewWorkLogHandler(service ports.WorkLogService) *WorkLogHandler {
	return &WorkLogHandler{service: service}
}

// Start handles POST /v1/worklog/start.
//
// @Summary      Clock in
// @Tags         worklog
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  clockResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "already clocked in"
// @Router       /v1/worklog/start [post]
func (h *WorkLogHandler) Start(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	session, err := h.service.ClockIn(c.Request().Context(), userID)
	countClockEvent(metrics.ActionClockIn, err, domain.ErrAlreadyClockedIn)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, clockResponse{
		Message: "clocked in",
		Session: toSessionResponse(*session),
	})
}

// End handles POST /v1/worklog/end.
//
// @Summary      Clock out
// @Tags         worklog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clockResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "no open session"
// @Router       /v1/worklog/end [post]
func (h *WorkLogHandler) End(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	session, err := h.service.ClockOut(c.Request().Context(), userID)
	countClockEvent(metrics.ActionClockOut, err, domain.ErrNoOpenSession)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clockResponse{
		Message: "clocked out",
		Session: toSessionResponse(*session),
	})
}

// Today handles GET /v1/worklog/today.
//
// @Summary      Sessions started today
// @Tags         worklog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/worklog/today [get]
func (h *WorkLogHandler) Today(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sessions, err := h.service.Today(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionList(sessions))
}

// Status handles GET /v1/worklog/status.
//
// @Summary      Current clock status
// @Tags         worklog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/worklog/status [get]
func (h *WorkLogHandler) Status(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	status, err := h.service.Status(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := statusResponse{Open: status.Open, ElapsedHours: status.ElapsedHours}
	if status.Session != nil {
		s := toSessionResponse(*status.Session)
		resp.Session = &s
	}
	return c.JSON(http.StatusOK, resp)
}

func countClockEvent(action string, err, conflict error) {
	result := metrics.ResultOK
	switch {
	case errors.Is(err, conflict):
		result = metrics.ResultConflict
	case err != nil:
		result = metrics.ResultError
	}
	metrics.ClockEventsTotal.WithLabelValues(action, result).Inc()
}
