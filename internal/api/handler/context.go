package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timeclock/timeclock-api/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the Auth middleware. A missing
// value means the route was mounted without Auth, so the request is rejected.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// bindAndValidate decodes the request into req and runs the struct validator.
// Both failures are reported as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
