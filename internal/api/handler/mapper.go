package handler

import (
	"github.com/timeclock/timeclock-api/internal/core/domain"
	"github.com/timeclock/timeclock-api/internal/core/report"
)

// --- Domain → Response ---

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toSessionResponse(s domain.WorkSession) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		Date:      s.DayKey(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Hours:     report.Round2(s.Hours()),
	}
}

func toSessionList(sessions []domain.WorkSession) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

func toMonthlyReportResponse(m *report.Month) monthlyReportResponse {
	days := make([]dayResponse, 0, len(m.Days))
	for _, d := range m.Days {
		days = append(days, dayResponse{Date: d.Date, Hours: d.Hours})
	}
	return monthlyReportResponse{Days: days, Total: m.Total}
}
