package httpserver

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/internal/util"
)

var (
	brandSortable = map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"name":      "name",
	}
	categorySortable = map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"name":      "name",
		"type":      "type",
	}
	blogSortable = map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"title":     "title",
	}
	faqSortable = map[string]string{
		"order":     "sort_order",
		"createdAt": "created_at",
	}
	heroSortable = map[string]string{
		"position":  "position",
		"createdAt": "created_at",
	}
	contactSortable = map[string]string{
		"createdAt": "created_at",
		"name":      "name",
		"status":    "status",
	}
)

func listParams(c echo.Context, sortable map[string]string, defaultSort string, defaultDesc bool) util.ListParams {
	return util.ParseListParams(c.QueryParam, sortable, defaultSort, defaultDesc)
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid").SetInternal(err)
	}
	return id, nil
}

// readForm accepts multipart and urlencoded bodies; only multipart carries files.
func readForm(c echo.Context) (map[string][]string, map[string][]*multipart.FileHeader, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form").SetInternal(err)
		}
		return form.Value, form.File, nil
	}
	values, err := c.FormParams()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	return values, nil, nil
}

func firstFile(files map[string][]*multipart.FileHeader, field string) *multipart.FileHeader {
	if fs := files[field]; len(fs) > 0 {
		return fs[0]
	}
	return nil
}

// bindJSON binds the request body into dst and runs struct validation.
func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	return transport.Validate(dst)
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Data: data})
}

func created(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, transport.APIResponse{Success: true, Message: message, Data: data})
}

func deleted(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: message})
}

func listed(c echo.Context, data any, p util.Pagination) error {
	return c.JSON(http.StatusOK, transport.ListResponse{Success: true, Data: data, Pagination: p})
}
