package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/filter"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
)

const invalidCredentials = "Invalid username or password"

// fail logs a failed request and turns err into the HTTP error for it.
// entity names the thing being handled in the not-found message.
func fail(l *slog.Logger, event, entity string, err error) error {
	code, msg := classify(err, entity)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "reason", msg, "error", err)
	} else {
		l.Warn(event, "status", code, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

func classify(err error, entity string) (int, string) {
	var (
		verrs     transport.ValidationErrors
		paramErr  *filter.ParamError
		invalid   *service.ValidationError
		conflict  *service.ConflictError
		httpError *echo.HTTPError
	)
	switch {
	case errors.As(err, &httpError):
		return httpError.Code, fmt.Sprint(httpError.Message)
	case errors.As(err, &verrs):
		return http.StatusBadRequest, verrs.Error()
	case errors.As(err, &paramErr):
		return http.StatusBadRequest, paramErr.Error()
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Msg
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound, entity + " not found"
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Msg
	case errors.Is(err, service.ErrConflict), errors.Is(err, repo.ErrDuplicate):
		return http.StatusConflict, entity + " already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, invalidCredentials
	default:
		return http.StatusInternalServerError, "cannot process " + entity
	}
}

// ErrorHandler renders every error as {success:false, message, error?, fields?}.
// The raw error text is only exposed for server errors.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}

	resp := transport.ErrorResponse{Message: fmt.Sprint(he.Message)}
	if he.Internal != nil {
		var verrs transport.ValidationErrors
		if errors.As(he.Internal, &verrs) {
			resp.Fields = verrs
		}
		if he.Code >= http.StatusInternalServerError {
			resp.Error = he.Internal.Error()
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, resp)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
