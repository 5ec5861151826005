package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/car_export/pkg/tokens"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := Middleware(Config{EnforceSameOrigin: true, SkipPaths: []string{"/api/auth"}})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, err
}

func status(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func TestSafeMethodIssuesToken(t *testing.T) {
	rec, err := serve(t, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.NoError(t, err)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "XSRF-TOKEN" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.False(t, cookie.HttpOnly)
	assert.Equal(t, cookie.Value, rec.Header().Get("X-CSRF-Token"))
}

func TestCookieAuthenticatedWrites(t *testing.T) {
	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodDelete, "http://example.com/api/products/1", nil)
		req.Header.Set("Origin", "http://example.com")
		req.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: "jwt"})
		req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "tok"})
		return req
	}

	_, err := serve(t, newReq())
	assert.Equal(t, http.StatusForbidden, status(err))

	req := newReq()
	req.Header.Set("X-CSRF-Token", "tok")
	_, err = serve(t, req)
	assert.NoError(t, err)

	req = newReq()
	req.Header.Set("X-CSRF-Token", "tok")
	req.Header.Set("Origin", "http://evil.test")
	_, err = serve(t, req)
	assert.Equal(t, http.StatusForbidden, status(err))
}

func TestUncheckedRequests(t *testing.T) {
	bearer := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	bearer.Header.Set(echo.HeaderAuthorization, "Bearer jwt")
	bearer.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: "jwt"})
	_, err := serve(t, bearer)
	assert.NoError(t, err)

	anonymous := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	_, err = serve(t, anonymous)
	assert.NoError(t, err)

	login := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	login.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: "stale"})
	_, err = serve(t, login)
	assert.NoError(t, err)
}
