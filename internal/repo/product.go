package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/car_export/internal/filter"
	"github.com/Skotchmaster/car_export/internal/models"
)

func idAndName(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

func withRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("Category", idAndName).Preload("Make", idAndName)
}

func (r *GormRepo) ListProducts(ctx context.Context, q filter.ProductQuery) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Scopes(q.Scope).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, q.Limit)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Scopes(q.Scope, q.Order, withRefs).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Scopes(withRefs).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	items := make([]models.Product, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.DB.WithContext(ctx).Scopes(withRefs).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return remove[models.Product](ctx, r.DB, id)
}

// CountProductsReferencing counts products whose column (category_id or make_id) equals id.
func (r *GormRepo) CountProductsReferencing(ctx context.Context, column string, id uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Where(column+" = ?", id).Count(&n).Error
	return n, err
}

// EachProductBatch walks every product in id order, batch rows at a time.
func (r *GormRepo) EachProductBatch(ctx context.Context, batch int, fn func([]models.Product) error) error {
	var items []models.Product
	res := r.DB.WithContext(ctx).Scopes(withRefs).FindInBatches(&items, batch, func(*gorm.DB, int) error {
		return fn(items)
	})
	return res.Error
}
