package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/core/ports"
	"github.com/fitlane/nutrition-api/internal/token"
)

// Context keys under which the guards store the resolved identity.
const (
	UserKey  = "user"
	AdminKey = "admin"
)

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// User validates the bearer token, resolves its subject to a live user by
// canonical phone, and injects the user into the request context. It is the
// single credential check for every user-scoped route.
func User(issuer *token.Issuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := issuer.Validate(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByPhone(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
				}
				return err
			}
			if user.Blocked {
				return echo.NewHTTPError(http.StatusForbidden, "user is blocked")
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// Admin validates the bearer token, requires the admin claim, and resolves
// the subject to a live admin by username. A user token whose subject
// happens to match an admin username is still rejected: it lacks the claim.
func Admin(issuer *token.Issuer, admins ports.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := issuer.Validate(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !claims.Admin {
				return echo.NewHTTPError(http.StatusForbidden, "not an admin")
			}

			admin, err := admins.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrAdminNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "admin not found")
				}
				return err
			}

			c.Set(AdminKey, admin)
			return next(c)
		}
	}
}
