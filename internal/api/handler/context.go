package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitlane/nutrition-api/internal/api/middleware"
	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// currentUser extracts the identity the user guard resolved for this
// request. A missing identity means the route was wired without the guard —
// fail closed with 401 rather than panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

func currentAdmin(c echo.Context) (*domain.Admin, error) {
	admin, ok := c.Get(middleware.AdminKey).(*domain.Admin)
	if !ok || admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return admin, nil
}
