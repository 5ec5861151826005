package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/filter"
	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	q, err := filter.ParseProductQuery(c.QueryParams())
	if err != nil {
		return fail(l, "get_products_failed", "product", err)
	}

	page, err := h.Svc.List(ctx, q)
	if err != nil {
		return fail(l, "get_products_failed", "product", err)
	}

	l.Info("get_products_success", "total", page.Pagination.Total)
	return listed(c, page.Items, page.Pagination)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	query := c.QueryParam("q")
	p := listParams(c, filter.ProductSortable, "createdAt", true)

	page, err := h.Svc.SearchProducts(ctx, query, p)
	if err != nil {
		return fail(l, "search_products_failed", "product", err)
	}

	l.Info("search_products_success", "query", query, "total", page.Pagination.Total)
	return listed(c, page.Items, page.Pagination)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "get_product_failed", "product", err)
	}

	prod, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", "product", err)
	}
	return ok(c, prod)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "create_product_failed", "product", err)
	}
	in, err := transport.ParseProductForm(values)
	if err != nil {
		return fail(l, "create_product_failed", "product", err)
	}

	prod, err := h.Svc.Create(ctx, in, service.ProductFiles{
		Thumbnail: firstFile(files, "thumbnail"),
		Images:    files["images"],
	})
	if err != nil {
		return fail(l, "create_product_failed", "product", err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return created(c, "Product created successfully", prod)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_product_failed", "product", err)
	}
	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "update_product_failed", "product", err)
	}
	in, err := transport.ParseProductForm(values)
	if err != nil {
		return fail(l, "update_product_failed", "product", err)
	}

	prod, err := h.Svc.Update(ctx, id, in, service.ProductFiles{
		Thumbnail: firstFile(files, "thumbnail"),
		Images:    files["images"],
	})
	if err != nil {
		return fail(l, "update_product_failed", "product", err)
	}

	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "Product updated successfully", Data: prod})
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "delete_product_failed", "product", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_product_failed", "product", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return deleted(c, "Product deleted successfully")
}
