package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/internal/util"
)

// ContactStore is implemented by the SQL repository and the MongoDB store.
type ContactStore interface {
	CreateContact(ctx context.Context, m *models.ContactMessage) error
	ListContacts(ctx context.Context, p util.ListParams, status string) (int64, []models.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id uuid.UUID, status string) (*models.ContactMessage, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

type ContactService struct {
	Store ContactStore
}

func (s *ContactService) Submit(ctx context.Context, req transport.ContactRequest) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
		Status:  models.ContactStatusNew,
	}
	if msg.Name == "" || msg.Message == "" {
		return nil, invalid("name and message are required")
	}
	if err := s.Store.CreateContact(ctx, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *ContactService) List(ctx context.Context, p util.ListParams, status string) (int64, []models.ContactMessage, error) {
	return s.Store.ListContacts(ctx, p, status)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ContactMessage, error) {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusResponded:
	default:
		return nil, invalid("status must be one of new, read, responded")
	}
	return s.Store.UpdateContactStatus(ctx, id, status)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Store.DeleteContact(ctx, id)
}
