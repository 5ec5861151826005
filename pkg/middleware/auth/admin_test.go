package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/car_export/pkg/tokens"
)

var testIssuer = tokens.Issuer{Secret: []byte("mw-secret"), Name: "car-export-admin", TTL: time.Hour}

func run(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, error, echo.Context) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	m := NewTokenAuth(testIssuer.Secret, testIssuer.Name)
	err := m.RequireAdmin(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, err, c
}

func TestRequireAdmin_BearerToken(t *testing.T) {
	token, _, err := testIssuer.Issue("7", "admin", tokens.RoleAdmin, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec, err, c := run(t, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", c.Get(ContextUserID))
	assert.Equal(t, "admin", c.Get(ContextUsername))
}

func TestRequireAdmin_Cookie(t *testing.T) {
	token, _, err := testIssuer.Issue("7", "admin", tokens.RoleAdmin, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: token})

	rec, err, _ := run(t, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_Failures(t *testing.T) {
	nonAdmin, _, err := testIssuer.Issue("8", "viewer", "viewer", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{name: "missing", header: "", code: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer nope", code: http.StatusUnauthorized},
		{name: "not admin", header: "Bearer " + nonAdmin, code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			_, err, _ := run(t, req)
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.code, he.Code)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	admin, _, err := testIssuer.Issue("7", "admin", tokens.RoleAdmin, time.Now())
	require.NoError(t, err)
	viewer, _, err := testIssuer.Issue("8", "viewer", "viewer", time.Now())
	require.NoError(t, err)
	m := NewTokenAuth(testIssuer.Secret, testIssuer.Name)

	for token, want := range map[string]bool{admin: true, viewer: false, "": false, "garbage": false} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		c := echo.New().NewContext(req, httptest.NewRecorder())
		assert.Equal(t, want, m.IsAdmin(c))
	}
}
