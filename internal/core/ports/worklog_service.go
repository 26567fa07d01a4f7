package ports

import (
	"context"

	"github.com/timeclock/timeclock-api/internal/core/domain"
)

// WorkStatus describes whether a user is currently clocked in.
type WorkStatus struct {
	Open    bool
	Session *domain.WorkSession
	// ElapsedHours is the live duration of the open session up to now.
	// Display only; reports never count open sessions.
	ElapsedHours float64
}

// WorkLogService is the session ledger: clock-in, clock-out and daily views.
type WorkLogService interface {
	ClockIn(ctx context.Context, userID string) (*domain.WorkSession, error)
	ClockOut(ctx context.Context, userID string) (*domain.WorkSession, error)
	Today(ctx context.Context, userID string) ([]domain.WorkSession, error)
	Status(ctx context.Context, userID string) (*WorkStatus, error)
}
