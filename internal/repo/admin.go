package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
)

func (r *GormRepo) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetAdmin(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	return get[models.AdminUser](ctx, r.DB, id)
}

func (r *GormRepo) CreateAdmin(ctx context.Context, user *models.AdminUser) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *GormRepo) UpdateAdminPassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.DB.WithContext(ctx).Model(&models.AdminUser{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
