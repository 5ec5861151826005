package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type BrandHTTP struct {
	Svc *service.BrandService
}

func (h *BrandHTTP) GetBrands(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.get_brands")

	p := listParams(c, brandSortable, "name", false)
	total, items, err := h.Svc.List(ctx, p, c.QueryParam("search"))
	if err != nil {
		return fail(l, "get_brands_failed", "brand", err)
	}
	return listed(c, items, p.Pagination(total))
}

func (h *BrandHTTP) GetBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.get_brand")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "get_brand_failed", "brand", err)
	}
	brand, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_brand_failed", "brand", err)
	}
	return ok(c, brand)
}

func (h *BrandHTTP) CreateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.create_brand")

	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "create_brand_failed", "brand", err)
	}
	in, err := transport.ParseBrandForm(values)
	if err != nil {
		return fail(l, "create_brand_failed", "brand", err)
	}

	brand, err := h.Svc.Create(ctx, in, firstFile(files, "thumbnail"))
	if err != nil {
		return fail(l, "create_brand_failed", "brand", err)
	}

	l.Info("create_brand_success", "brand_id", brand.ID)
	return created(c, "Brand created successfully", brand)
}

func (h *BrandHTTP) UpdateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.update_brand")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_brand_failed", "brand", err)
	}
	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "update_brand_failed", "brand", err)
	}
	in, err := transport.ParseBrandForm(values)
	if err != nil {
		return fail(l, "update_brand_failed", "brand", err)
	}

	brand, err := h.Svc.Update(ctx, id, in, firstFile(files, "thumbnail"))
	if err != nil {
		return fail(l, "update_brand_failed", "brand", err)
	}
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "Brand updated successfully", Data: brand})
}

func (h *BrandHTTP) DeleteBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.delete_brand")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "delete_brand_failed", "brand", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_brand_failed", "brand", err)
	}

	l.Info("delete_brand_success", "brand_id", id)
	return deleted(c, "Brand deleted successfully")
}
