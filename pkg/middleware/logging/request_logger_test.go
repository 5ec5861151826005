package loggingmw

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Skotchmaster/car_export/pkg/logging"
)

func newEcho(buf *bytes.Buffer) *echo.Echo {
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	e := echo.New()
	e.Use(RequestLogger(base))
	e.GET("/api/products/:id", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside_handler")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ln := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if ln == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(ln), &m))
		out = append(out, m)
	}
	return out
}

func TestRequestLogger_ScopedLoggerAndTrace(t *testing.T) {
	var buf bytes.Buffer
	e := newEcho(&buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	req := httptest.NewRequest(http.MethodGet, "/api/products/42", nil)
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))
	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "inside_handler", got[0]["msg"])
	assert.Equal(t, "rid-1", got[0]["request_id"])
	assert.Equal(t, traceID.String(), got[0]["trace_id"])
	assert.Equal(t, "/api/products/:id", got[1]["route"])
	assert.EqualValues(t, 200, got[1]["status"])
}

func TestRequestLogger_ErrorsAndHealthChecks(t *testing.T) {
	var buf bytes.Buffer
	e := newEcho(&buf)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	got := lines(t, &buf)
	require.Len(t, got, 1, "health check is logged below info")
	assert.Equal(t, "WARN", got[0]["level"])
	assert.EqualValues(t, 404, got[0]["status"])
	assert.Contains(t, got[0]["error"], "product not found")
}
