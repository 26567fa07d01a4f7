package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/v1/worklog/today", func(c echo.Context) error {
		c.Set(ContextUserID, "u1")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/worklog/today", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" || entry["status"] != float64(http.StatusNoContent) {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["uri"] != "/v1/worklog/today" || entry["user_id"] != "u1" || entry["request_id"] != "req-1" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestRequestLogger_ClientErrorIsWarn(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" || entry["status"] != float64(http.StatusNotFound) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}
