package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timeclock/timeclock-api/internal/core/domain"
	"github.com/timeclock/timeclock-api/internal/core/ports"
)

type stubWorkLogService struct {
	clockInFn  func(ctx context.Context, userID string) (*domain.WorkSession, error)
	clockOutFn func(ctx context.Context, userID string) (*domain.WorkSession, error)
	todayFn    func(ctx context.Context, userID string) ([]domain.WorkSession, error)
	statusFn   func(ctx context.Context, userID string) (*ports.WorkStatus, error)
}

func (s *stubWorkLogService) ClockIn(ctx context.Context, userID string) (*domain.WorkSession, error) {
	return s.clockInFn(ctx, userID)
}

func (s *stubWorkLogService) ClockOut(ctx context.Context, userID string) (*domain.WorkSession, error) {
	return s.clockOutFn(ctx, userID)
}

func (s *stubWorkLogService) Today(ctx context.Context, userID string) ([]domain.WorkSession, error) {
	return s.todayFn(ctx, userID)
}

func (s *stubWorkLogService) Status(ctx context.Context, userID string) (*ports.WorkStatus, error) {
	return s.statusFn(ctx, userID)
}

func openSession(userID string) *domain.WorkSession {
	return &domain.WorkSession{
		ID:           "s1",
		UserID:       userID,
		CalendarDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:    time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC),
		Open:         true,
	}
}

func closedSession(userID string, d time.Duration) *domain.WorkSession {
	s := openSession(userID)
	end := s.StartTime.Add(d)
	s.EndTime = &end
	s.Open = false
	return s
}

func TestWorkLogHandler_Start(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{
		clockInFn: func(ctx context.Context, userID string) (*domain.WorkSession, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user %s", userID)
			}
			return openSession(userID), nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/v1/worklog/start", "", "u1")
	if err := handler.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	session := resp["session"].(map[string]any)
	if session["date"] != "2025-03-03" || session["end_time"] != nil || session["hours"] != float64(0) {
		t.Fatalf("unexpected session payload: %+v", session)
	}
}

func TestWorkLogHandler_Start_AlreadyClockedIn(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{
		clockInFn: func(context.Context, string) (*domain.WorkSession, error) {
			return nil, domain.ErrAlreadyClockedIn
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/v1/worklog/start", "", "u1")
	if err := handler.Start(c); !errors.Is(err, domain.ErrAlreadyClockedIn) {
		t.Fatalf("expected ErrAlreadyClockedIn, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("nothing must be written on conflict")
	}
}

func TestWorkLogHandler_RequiresIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{})

	for name, fn := range map[string]echo.HandlerFunc{
		"start":  handler.Start,
		"end":    handler.End,
		"today":  handler.Today,
		"status": handler.Status,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := jsonContext(e, http.MethodGet, "/", "", "")
			expectHTTPError(t, fn(c), http.StatusUnauthorized)
		})
	}
}

func TestWorkLogHandler_End(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{
		clockOutFn: func(ctx context.Context, userID string) (*domain.WorkSession, error) {
			return closedSession(userID, 3*time.Hour+30*time.Minute), nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/v1/worklog/end", "", "u1")
	if err := handler.End(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp clockResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Session.Hours != 3.5 || resp.Session.EndTime == nil {
		t.Fatalf("unexpected session: %+v", resp.Session)
	}
}

func TestWorkLogHandler_End_NoOpenSession(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{
		clockOutFn: func(context.Context, string) (*domain.WorkSession, error) {
			return nil, domain.ErrNoOpenSession
		},
	})

	c, _ := jsonContext(e, http.MethodPost, "/v1/worklog/end", "", "u1")
	if err := handler.End(c); !errors.Is(err, domain.ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession, got %v", err)
	}
}

func TestWorkLogHandler_Today(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{
		todayFn: func(ctx context.Context, userID string) ([]domain.WorkSession, error) {
			return []domain.WorkSession{*closedSession(userID, time.Hour), *openSession(userID)}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodGet, "/v1/worklog/today", "", "u1")
	if err := handler.Today(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].Hours != 1 || resp[1].EndTime != nil {
		t.Fatalf("unexpected sessions: %+v", resp)
	}
}

func TestWorkLogHandler_Today_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{
		todayFn: func(context.Context, string) ([]domain.WorkSession, error) { return nil, nil },
	})

	c, rec := jsonContext(e, http.MethodGet, "/v1/worklog/today", "", "u1")
	if err := handler.Today(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestWorkLogHandler_Status(t *testing.T) {
	e := newTestEcho()
	handler := NewWorkLogHandler(&stubWorkLogService{
		statusFn: func(ctx context.Context, userID string) (*ports.WorkStatus, error) {
			return &ports.WorkStatus{Open: true, Session: openSession(userID), ElapsedHours: 1.5}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodGet, "/v1/worklog/status", "", "u1")
	if err := handler.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Open || resp.Session == nil || resp.ElapsedHours != 1.5 {
		t.Fatalf("unexpected status: %+v", resp)
	}
}
