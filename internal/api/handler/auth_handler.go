package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type requestCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=4"`
}

type registerRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"required,min=3,max=32"`
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type statusResponse struct {
	Status string `json:"status"`
	Phone  string `json:"phone,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RequestCode issues a one-time SMS code for a phone number.
//
// @Summary      Request a verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestCodeRequest  true  "Phone number in any format"
// @Success      202   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/request-code [post]
func (h *AuthHandler) RequestCode(c echo.Context) error {
	var req requestCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	phone, err := h.authService.RequestCode(c.Request().Context(), req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, statusResponse{Status: "code sent", Phone: phone})
}

// VerifyCode checks a one-time code against the live record for the phone.
//
// @Summary      Verify a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyCodeRequest  true  "Phone and the received code"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /auth/verify-code [post]
func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.VerifyCode(c.Request().Context(), req.Phone, req.Code); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "phone verified"})
}

// Register promotes a verified phone to a full account and returns a token.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Verified phone, password and nickname"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tok, user, err := h.authService.Register(c.Request().Context(), req.Phone, req.Password, req.Nickname)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: tok, User: user})
}

// Login authenticates a registered phone and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Phone and password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tok, user, err := h.authService.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: tok, User: user})
}
