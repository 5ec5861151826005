package loggingmw

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/Skotchmaster/car_export/pkg/logging"
)

const healthPrefix = "/health/"

// RequestLogger attaches a request-scoped logger to the context and logs one line per request.
// Errors are rendered here through the echo error handler so the logged status is the final one.
// Health checks are logged at debug.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = req.Header.Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", req.Method,
				"route", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			if sc := trace.SpanContextFromContext(req.Context()); sc.HasTraceID() {
				l = l.With("trace_id", sc.TraceID().String())
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{"status", status, "duration_ms", time.Since(start).Milliseconds()}
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
				attrs = append(attrs, "error", errStr(err))
			case status >= 400:
				level = slog.LevelWarn
				attrs = append(attrs, "error", errStr(err))
			default:
				attrs = append(attrs, "bytes", c.Response().Size)
				if strings.HasPrefix(req.URL.Path, healthPrefix) {
					level = slog.LevelDebug
				}
			}
			l.Log(context.Background(), level, "request_completed", attrs...)
			return nil
		}
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
