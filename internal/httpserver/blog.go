package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type BlogHTTP struct {
	Svc *service.BlogService
}

func (h *BlogHTTP) GetBlogs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get_blogs")

	p := listParams(c, blogSortable, "createdAt", true)
	total, items, err := h.Svc.List(ctx, p, c.QueryParam("search"))
	if err != nil {
		return fail(l, "get_blogs_failed", "blog", err)
	}
	return listed(c, items, p.Pagination(total))
}

func (h *BlogHTTP) GetBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get_blog")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "get_blog_failed", "blog", err)
	}
	blog, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_blog_failed", "blog", err)
	}
	return ok(c, blog)
}

func (h *BlogHTTP) CreateBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.create_blog")

	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "create_blog_failed", "blog", err)
	}
	in, err := transport.ParseBlogForm(values)
	if err != nil {
		return fail(l, "create_blog_failed", "blog", err)
	}

	blog, err := h.Svc.Create(ctx, in, firstFile(files, "thumbnail"))
	if err != nil {
		return fail(l, "create_blog_failed", "blog", err)
	}

	l.Info("create_blog_success", "blog_id", blog.ID)
	return created(c, "Blog created successfully", blog)
}

func (h *BlogHTTP) UpdateBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.update_blog")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_blog_failed", "blog", err)
	}
	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "update_blog_failed", "blog", err)
	}
	in, err := transport.ParseBlogForm(values)
	if err != nil {
		return fail(l, "update_blog_failed", "blog", err)
	}

	blog, err := h.Svc.Update(ctx, id, in, firstFile(files, "thumbnail"))
	if err != nil {
		return fail(l, "update_blog_failed", "blog", err)
	}
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "Blog updated successfully", Data: blog})
}

func (h *BlogHTTP) DeleteBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.delete_blog")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "delete_blog_failed", "blog", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_blog_failed", "blog", err)
	}
	return deleted(c, "Blog deleted successfully")
}
