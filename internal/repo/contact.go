package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/util"
)

func (r *GormRepo) CreateContact(ctx context.Context, m *models.ContactMessage) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *GormRepo) ListContacts(ctx context.Context, p util.ListParams, status string) (int64, []models.ContactMessage, error) {
	return list[models.ContactMessage](ctx, r.DB, p, equals("status", status))
}

func (r *GormRepo) UpdateContactStatus(ctx context.Context, id uuid.UUID, status string) (*models.ContactMessage, error) {
	res := r.DB.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return get[models.ContactMessage](ctx, r.DB, id)
}

func (r *GormRepo) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return remove[models.ContactMessage](ctx, r.DB, id)
}
