package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// expectUnauthorized runs Auth with the given header and asserts a 401.
func expectUnauthorized(t *testing.T, header string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth("secret")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub":   "665f1c2e9b1d4a3f8c7e6d5b",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "665f1c2e9b1d4a3f8c7e6d5b" {
			t.Fatalf("user_id not set")
		}
		if c.Get(ContextEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	expectUnauthorized(t, "")
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	expectUnauthorized(t, "Token abc")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	expectUnauthorized(t, "Bearer not-a-token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	signed := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	expectUnauthorized(t, "Bearer "+signed)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	signed := signToken(t, jwt.SigningMethodHS256, "other", jwt.MapClaims{"sub": "u1"})
	expectUnauthorized(t, "Bearer "+signed)
}

func TestAuthMiddleware_WrongAlgorithm(t *testing.T) {
	signed := signToken(t, jwt.SigningMethodHS384, "secret", jwt.MapClaims{"sub": "u1"})
	expectUnauthorized(t, "Bearer "+signed)
}

func TestAuthMiddleware_MissingSubject(t *testing.T) {
	signed := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{"email": "a@example.com"})
	expectUnauthorized(t, "Bearer "+signed)
}
