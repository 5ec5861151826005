package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
	// Placeholder is returned as thumbnail for categories without one.
	Placeholder string
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_categories")

	typ := c.QueryParam("type")
	switch typ {
	case "", models.CategoryTypeProduct, models.CategoryTypeTruck:
	default:
		return fail(l, "get_categories_failed", "category", transport.Invalid("type", "must be one of: product truck"))
	}

	p := listParams(c, categorySortable, "name", false)
	total, items, err := h.Svc.List(ctx, p, typ)
	if err != nil {
		return fail(l, "get_categories_failed", "category", err)
	}
	return listed(c, transport.CategoryResponses(items, h.Placeholder), p.Pagination(total))
}

func (h *CategoryHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_category")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "get_category_failed", "category", err)
	}
	cat, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_category_failed", "category", err)
	}
	return ok(c, transport.CategoryResponse(*cat, h.Placeholder))
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "create_category_failed", "category", err)
	}
	in, err := transport.ParseCategoryForm(values)
	if err != nil {
		return fail(l, "create_category_failed", "category", err)
	}

	cat, err := h.Svc.Create(ctx, in, firstFile(files, "thumbnail"))
	if err != nil {
		return fail(l, "create_category_failed", "category", err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return created(c, "Category created successfully", transport.CategoryResponse(*cat, h.Placeholder))
}

func (h *CategoryHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update_category")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_category_failed", "category", err)
	}
	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "update_category_failed", "category", err)
	}
	in, err := transport.ParseCategoryForm(values)
	if err != nil {
		return fail(l, "update_category_failed", "category", err)
	}

	cat, err := h.Svc.Update(ctx, id, in, firstFile(files, "thumbnail"))
	if err != nil {
		return fail(l, "update_category_failed", "category", err)
	}
	return c.JSON(http.StatusOK, transport.APIResponse{
		Success: true,
		Message: "Category updated successfully",
		Data:    transport.CategoryResponse(*cat, h.Placeholder),
	})
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete_category")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "delete_category_failed", "category", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_category_failed", "category", err)
	}

	l.Info("delete_category_success", "category_id", id)
	return deleted(c, "Category deleted successfully")
}
