package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminCreateRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=32"`
	Password   string `json:"password" validate:"required,min=8"`
	Superadmin bool   `json:"superadmin"`
}

type adminUpdateRequest struct {
	Password   *string `json:"password,omitempty"`
	Superadmin *bool   `json:"superadmin,omitempty"`
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

type adminResponse struct {
	Token string        `json:"token,omitempty"`
	Admin *domain.Admin `json:"admin"`
}

// Login authenticates an admin and returns a token carrying the admin claim.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Admin credentials"
// @Success      200   {object}  adminResponse
// @Failure      401   {object}  map[string]string
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tok, admin, err := h.adminService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Token: tok, Admin: admin})
}

// Create provisions a new admin account. Superadmin only.
//
// @Summary      Create an admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminCreateRequest  true  "New admin details"
// @Success      201   {object}  adminResponse
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/create [post]
func (h *AdminHandler) Create(c echo.Context) error {
	actor, err := currentAdmin(c)
	if err != nil {
		return err
	}

	var req adminCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tok, admin, err := h.adminService.Create(c.Request().Context(), actor, req.Username, req.Password, req.Superadmin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, adminResponse{Token: tok, Admin: admin})
}

// Me returns the authenticated admin.
//
// @Summary      Get own admin account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Admin
// @Router       /admin/me [get]
func (h *AdminHandler) Me(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// UpdateMe changes the authenticated admin's password or superadmin flag.
//
// @Summary      Update own admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Admin
// @Router       /admin/me [patch]
func (h *AdminHandler) UpdateMe(c echo.Context) error {
	actor, err := currentAdmin(c)
	if err != nil {
		return err
	}

	var req adminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	admin, err := h.adminService.UpdateSelf(c.Request().Context(), actor, ports.AdminPatch{
		Password:   req.Password,
		Superadmin: req.Superadmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// ListUsers returns a page of user accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	users, err := h.adminService.ListUsers(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a single user by id.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.adminService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// BlockUser sets or clears the blocked flag on a user.
//
// @Summary      Block or unblock a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "User id"
// @Param        body  body      blockRequest  true  "Desired blocked state"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id}/block [put]
func (h *AdminHandler) BlockUser(c echo.Context) error {
	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.adminService.BlockUser(c.Request().Context(), c.Param("id"), req.Blocked)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "no content"
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.adminService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Statistics returns aggregate account counters.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Statistics
// @Router       /admin/statistics [get]
func (h *AdminHandler) Statistics(c echo.Context) error {
	stats, err := h.adminService.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
