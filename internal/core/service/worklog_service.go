package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/timeclock/timeclock-api/internal/core/domain"
	"github.com/timeclock/timeclock-api/internal/core/ports"
)

// WorkLogService implements the session ledger on top of a WorkSessionRepository.
type WorkLogService struct {
	repo   ports.WorkSessionRepository
	loc    *time.Location
	now    func() time.Time
	logger zerolog.Logger
}

// NewWorkLogService returns a ledger that attributes sessions to calendar
// dates in loc. A nil loc means UTC.
func NewWorkLogService(repo ports.WorkSessionRepository, loc *time.Location, logger zerolog.Logger) *WorkLogService {
	if loc == nil {
		loc = time.UTC
	}
	return &WorkLogService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// ClockIn opens a new session for the user. It fails with
// domain.ErrAlreadyClockedIn when a session is already open.
func (s *WorkLogService) ClockIn(ctx context.Context, userID string) (*domain.WorkSession, error) {
	_, err := s.repo.FindOpen(ctx, userID)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyClockedIn
	case !errors.Is(err, domain.ErrNoOpenSession):
		return nil, fmt.Errorf("clock in: %w", err)
	}

	now := s.now()
	session := &domain.WorkSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		CalendarDate: domain.CalendarDateOf(now, s.loc),
		StartTime:    now.UTC(),
		Open:         true,
		CreatedAt:    now.UTC(),
	}

	// The repository rejects a second open session even if another request
	// got past the check above.
	if err := s.repo.Create(ctx, session); err != nil {
		if errors.Is(err, domain.ErrAlreadyClockedIn) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create work session")
		return nil, fmt.Errorf("clock in: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("session_id", session.ID).
		Str("date", session.DayKey()).
		Msg("clocked in")

	return session, nil
}

// ClockOut closes the user's latest open session. It fails with
// domain.ErrNoOpenSession when nothing is open.
func (s *WorkLogService) ClockOut(ctx context.Context, userID string) (*domain.WorkSession, error) {
	session, err := s.repo.CloseOpen(ctx, userID, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return nil, err
		}
		return nil, fmt.Errorf("clock out: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("session_id", session.ID).
		Float64("hours", session.Hours()).
		Msg("clocked out")

	return session, nil
}

// Today lists the user's sessions started during the current local day.
func (s *WorkLogService) Today(ctx context.Context, userID string) ([]domain.WorkSession, error) {
	from, to := domain.DayBounds(s.now(), s.loc)
	sessions, err := s.repo.ListByStartTime(ctx, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("today sessions: %w", err)
	}
	return sessions, nil
}

// Status reports the user's open session, if any, with its live elapsed time.
func (s *WorkLogService) Status(ctx context.Context, userID string) (*ports.WorkStatus, error) {
	session, err := s.repo.FindOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return &ports.WorkStatus{}, nil
		}
		return nil, fmt.Errorf("work status: %w", err)
	}

	elapsed := s.now().Sub(session.StartTime).Hours()
	if elapsed < 0 {
		elapsed = 0
	}
	return &ports.WorkStatus{Open: true, Session: session, ElapsedHours: elapsed}, nil
}
