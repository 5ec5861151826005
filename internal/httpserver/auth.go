package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
	middleware "github.com/Skotchmaster/car_export/pkg/middleware/auth"
	"github.com/Skotchmaster/car_export/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "login_failed", "user", err)
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login_failed", "user", err)
	}

	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, res.Token, "/", res.ExpiresAt))
	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.AuthResponse{
		Success: true,
		Message: "Authentication successful",
		Token:   res.Token,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "Logged out"})
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.change_password")

	raw, _ := c.Get(middleware.ContextUserID).(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		l.Warn("change_password_failed", "status", 401, "reason", "token carries no user id", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
	}

	var req transport.ChangePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "change_password_failed", "user", err)
	}

	err = h.Svc.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, service.ErrInvalidCredentials) {
		l.Warn("change_password_failed", "status", 400, "reason", "current password mismatch")
		return echo.NewHTTPError(http.StatusBadRequest, "current password is incorrect").SetInternal(err)
	}
	if err != nil {
		return fail(l, "change_password_failed", "user", err)
	}

	l.Info("change_password_success", "user_id", userID)
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "Password updated successfully"})
}
