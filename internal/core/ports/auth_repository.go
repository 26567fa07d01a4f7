package ports

import (
	"context"

	"github.com/timeclock/timeclock-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ResetTokenStore keeps short-lived password reset tokens.
type ResetTokenStore interface {
	// Save stores token for userID, revoking any token issued to that user before.
	Save(ctx context.Context, userID, token string) error
	// Consume returns the user the token belongs to and deletes it.
	// Unknown or expired tokens yield domain.ErrInvalidResetToken.
	Consume(ctx context.Context, token string) (string, error)
}

// Mailer delivers transactional emails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}
