package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/pkg/tokens"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

type TokenAuth struct {
	JWTSecret []byte
	Issuer    string
}

func NewTokenAuth(secret []byte, issuer string) *TokenAuth {
	return &TokenAuth{JWTSecret: secret, Issuer: issuer}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *TokenAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *TokenAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != tokens.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *TokenAuth) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret, m.Issuer)
		if err != nil {
			c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token").SetInternal(err)
		}

		if validator != nil {
			if vErr := validator(claims); vErr != nil {
				return vErr
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		return next(c)
	}
}

// IsAdmin reports whether the request carries a valid admin token without rejecting it.
func (m *TokenAuth) IsAdmin(c echo.Context) bool {
	raw := tokenFromRequest(c)
	if raw == "" {
		return false
	}
	claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret, m.Issuer)
	return err == nil && claims.Role == tokens.RoleAdmin
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
	}
	if ck, err := c.Cookie(tokens.AccessCookie); err == nil {
		return ck.Value
	}
	return ""
}
