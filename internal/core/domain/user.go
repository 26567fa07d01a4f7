package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidResetToken = errors.New("invalid or expired reset token")
var ErrMissingField = errors.New("missing required field")
var ErrWeakPassword = errors.New("password must be at least 6 characters")

// MinPasswordLength is the shortest password accepted on register and reset.
const MinPasswordLength = 6

// User models an employee that tracks time.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
