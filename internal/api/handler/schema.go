package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Work log ---

type sessionResponse struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Hours     float64    `json:"hours"`
}

type clockResponse struct {
	Message string          `json:"message"`
	Session sessionResponse `json:"session"`
}

type statusResponse struct {
	Open         bool             `json:"open"`
	Session      *sessionResponse `json:"session,omitempty"`
	ElapsedHours float64          `json:"elapsed_hours"`
}

// --- Reports ---

type monthlyReportRequest struct {
	Year  int `query:"year"  validate:"required"`
	Month int `query:"month" validate:"required"`
}

type exportReportRequest struct {
	Year   int    `query:"year"   validate:"required"`
	Month  int    `query:"month"  validate:"required"`
	Format string `query:"format" validate:"required"`
}

type dayResponse struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type monthlyReportResponse struct {
	Days  []dayResponse `json:"days"`
	Total float64       `json:"total"`
}
