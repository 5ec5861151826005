package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

const headerTotalCount = "X-Total-Count"

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) SubmitContact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.submit")

	var req transport.ContactRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "submit_contact_failed", "contact message", err)
	}
	msg, err := h.Svc.Submit(ctx, req)
	if err != nil {
		return fail(l, "submit_contact_failed", "contact message", err)
	}

	l.Info("submit_contact_success", "contact_id", msg.ID)
	return created(c, "Message sent successfully", msg)
}

// GetContacts answers with a bare array; the total goes into X-Total-Count.
func (h *ContactHTTP) GetContacts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.get_contacts")

	status := c.QueryParam("status")
	switch status {
	case "", models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusResponded:
	default:
		return fail(l, "get_contacts_failed", "contact message", transport.Invalid("status", "must be one of: new read responded"))
	}

	p := listParams(c, contactSortable, "createdAt", true)
	total, items, err := h.Svc.List(ctx, p, status)
	if err != nil {
		return fail(l, "get_contacts_failed", "contact message", err)
	}
	if items == nil {
		items = []models.ContactMessage{}
	}

	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

func (h *ContactHTTP) UpdateContactStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.update_status")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_contact_failed", "contact message", err)
	}
	var req transport.ContactStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(l, "update_contact_failed", "contact message", err)
	}
	msg, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "update_contact_failed", "contact message", err)
	}
	return ok(c, msg)
}

func (h *ContactHTTP) DeleteContact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.delete")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "delete_contact_failed", "contact message", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_contact_failed", "contact message", err)
	}
	return deleted(c, "Message deleted successfully")
}
