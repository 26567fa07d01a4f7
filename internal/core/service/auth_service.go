package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/timeclock/timeclock-api/internal/core/domain"
	"github.com/timeclock/timeclock-api/internal/core/ports"
)

const resetTokenBytes = 32

// AuthConfig holds token signing and link settings for AuthService.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AppURL is the public base URL of the frontend, used in reset links.
	AppURL string
}

// AuthService implements registration, login and password reset.
type AuthService struct {
	repo   ports.UserRepository
	resets ports.ResetTokenStore
	mailer ports.Mailer
	cfg    AuthConfig
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, resets ports.ResetTokenStore, mailer ports.Mailer, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	cfg.AppURL = strings.TrimRight(cfg.AppURL, "/")
	return &AuthService{repo: repo, resets: resets, mailer: mailer, cfg: cfg, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name", domain.ErrMissingField)
	case email == "":
		return nil, fmt.Errorf("%w: email", domain.ErrMissingField)
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and returns a signed JWT. Unknown emails and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ForgotPassword issues a reset token and mails the reset link. Unknown
// emails are not reported so callers cannot probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email", domain.ErrMissingField)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("forgot password: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	if err := s.resets.Save(ctx, user.ID, token); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, s.resetLink(token)); err != nil {
		return fmt.Errorf("forgot password: send mail: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

// ResetPassword consumes the token and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	if len(password) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password reset")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) resetLink(token string) string {
	return s.cfg.AppURL + "/reset-password?token=" + url.QueryEscape(token)
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
