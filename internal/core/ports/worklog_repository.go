package ports

import (
	"context"
	"time"

	"github.com/timeclock/timeclock-api/internal/core/domain"
)

// WorkSessionRepository persists work sessions. Implementations must make the
// single-open-session invariant hold under concurrent requests for one user.
type WorkSessionRepository interface {
	// FindOpen returns the user's open session or domain.ErrNoOpenSession.
	FindOpen(ctx context.Context, userID string) (*domain.WorkSession, error)

	// Create inserts an open session. If another open session already exists
	// for the user it fails with domain.ErrAlreadyClockedIn.
	Create(ctx context.Context, s *domain.WorkSession) error

	// CloseOpen atomically sets the end time of the user's latest open session
	// to max(end, start_time) and returns the updated session.
	// Fails with domain.ErrNoOpenSession when nothing is open.
	CloseOpen(ctx context.Context, userID string, end time.Time) (*domain.WorkSession, error)

	// ListByStartTime returns sessions with from <= start_time <= to, ascending by start_time.
	ListByStartTime(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkSession, error)

	// ListByCalendarDate returns sessions with from <= calendar_date < to,
	// ordered by calendar_date then start_time.
	ListByCalendarDate(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkSession, error)
}
