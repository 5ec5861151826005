package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type HeroHTTP struct {
	Svc *service.HeroService
}

func (h *HeroHTTP) GetSlides(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "hero.get_slides")

	p := listParams(c, heroSortable, "position", false)
	total, items, err := h.Svc.List(ctx, p)
	if err != nil {
		return fail(l, "get_slides_failed", "hero slide", err)
	}
	return listed(c, items, p.Pagination(total))
}

func (h *HeroHTTP) GetSlide(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "hero.get_slide")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "get_slide_failed", "hero slide", err)
	}
	slide, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_slide_failed", "hero slide", err)
	}
	return ok(c, slide)
}

func (h *HeroHTTP) CreateSlide(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "hero.create_slide")

	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "create_slide_failed", "hero slide", err)
	}
	in, err := transport.ParseHeroForm(values)
	if err != nil {
		return fail(l, "create_slide_failed", "hero slide", err)
	}

	slide, err := h.Svc.Create(ctx, in, firstFile(files, "media"))
	if err != nil {
		return fail(l, "create_slide_failed", "hero slide", err)
	}

	l.Info("create_slide_success", "hero_id", slide.ID)
	return created(c, "Hero slide created successfully", slide)
}

func (h *HeroHTTP) UpdateSlide(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "hero.update_slide")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_slide_failed", "hero slide", err)
	}
	values, files, err := readForm(c)
	if err != nil {
		return fail(l, "update_slide_failed", "hero slide", err)
	}
	in, err := transport.ParseHeroForm(values)
	if err != nil {
		return fail(l, "update_slide_failed", "hero slide", err)
	}

	slide, err := h.Svc.Update(ctx, id, in, firstFile(files, "media"))
	if err != nil {
		return fail(l, "update_slide_failed", "hero slide", err)
	}
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "Hero slide updated successfully", Data: slide})
}

func (h *HeroHTTP) DeleteSlide(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "hero.delete_slide")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "delete_slide_failed", "hero slide", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_slide_failed", "hero slide", err)
	}
	return deleted(c, "Hero slide deleted successfully")
}

func (h *HeroHTTP) ReorderSlides(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "hero.reorder")

	var req transport.ReorderRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "reorder_slides_failed", "hero slide", err)
	}
	if err := h.Svc.Reorder(ctx, req.FirstID, req.SecondID); err != nil {
		return fail(l, "reorder_slides_failed", "hero slide", err)
	}
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "Hero order updated"})
}

func (h *HeroHTTP) MoveSlide(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "hero.move")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "move_slide_failed", "hero slide", err)
	}
	var req transport.MoveRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "move_slide_failed", "hero slide", err)
	}
	moved, err := h.Svc.Move(ctx, id, req.Direction == "up")
	if err != nil {
		return fail(l, "move_slide_failed", "hero slide", err)
	}
	return c.JSON(http.StatusOK, transport.MoveResponse{Success: true, Moved: moved})
}
