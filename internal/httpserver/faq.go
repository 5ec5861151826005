package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
	middleware "github.com/Skotchmaster/car_export/pkg/middleware/auth"
)

type FAQHTTP struct {
	Svc *service.FAQService
	// Auth decides whether all=true may include inactive entries.
	Auth *middleware.TokenAuth
}

func (h *FAQHTTP) GetFAQs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "faq.get_faqs")

	activeOnly := true
	if c.QueryParam("all") == "true" {
		if h.Auth == nil || !h.Auth.IsAdmin(c) {
			l.Warn("get_faqs_failed", "status", 401, "reason", "all=true requires admin")
			return echo.NewHTTPError(http.StatusUnauthorized, "admin access required")
		}
		activeOnly = false
	}

	p := listParams(c, faqSortable, "order", false)
	total, items, err := h.Svc.List(ctx, p, activeOnly)
	if err != nil {
		return fail(l, "get_faqs_failed", "faq", err)
	}
	return listed(c, items, p.Pagination(total))
}

func (h *FAQHTTP) GetFAQ(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "faq.get_faq")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "get_faq_failed", "faq", err)
	}
	faq, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_faq_failed", "faq", err)
	}
	return ok(c, faq)
}

func (h *FAQHTTP) CreateFAQ(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "faq.create_faq")

	var req transport.FAQRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "create_faq_failed", "faq", err)
	}
	faq, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_faq_failed", "faq", err)
	}

	l.Info("create_faq_success", "faq_id", faq.ID)
	return created(c, "FAQ created successfully", faq)
}

func (h *FAQHTTP) UpdateFAQ(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "faq.update_faq")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_faq_failed", "faq", err)
	}
	var req transport.FAQRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "update_faq_failed", "faq", err)
	}
	faq, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_faq_failed", "faq", err)
	}
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "FAQ updated successfully", Data: faq})
}

func (h *FAQHTTP) DeleteFAQ(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "faq.delete_faq")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "delete_faq_failed", "faq", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_faq_failed", "faq", err)
	}
	return deleted(c, "FAQ deleted successfully")
}

func (h *FAQHTTP) ReorderFAQ(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "faq.reorder")

	var req transport.ReorderRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "reorder_faq_failed", "faq", err)
	}
	if err := h.Svc.Reorder(ctx, req.FirstID, req.SecondID); err != nil {
		return fail(l, "reorder_faq_failed", "faq", err)
	}

	l.Info("reorder_faq_success", "first_id", req.FirstID, "second_id", req.SecondID)
	return c.JSON(http.StatusOK, transport.APIResponse{Success: true, Message: "FAQ order updated"})
}

func (h *FAQHTTP) MoveFAQ(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "faq.move")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "move_faq_failed", "faq", err)
	}
	var req transport.MoveRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "move_faq_failed", "faq", err)
	}
	moved, err := h.Svc.Move(ctx, id, req.Direction == "up")
	if err != nil {
		return fail(l, "move_faq_failed", "faq", err)
	}
	return c.JSON(http.StatusOK, transport.MoveResponse{Success: true, Moved: moved})
}
