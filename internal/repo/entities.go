package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/car_export/internal/filter"
	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/util"
)

const (
	faqOrderColumn     = "sort_order"
	heroPositionColumn = "position"
)

func equals(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// brands

func (r *GormRepo) ListBrands(ctx context.Context, p util.ListParams, search string) (int64, []models.Brand, error) {
	return list[models.Brand](ctx, r.DB, p, filter.Contains(strings.TrimSpace(search), "name"))
}

func (r *GormRepo) GetBrand(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return get[models.Brand](ctx, r.DB, id)
}

func (r *GormRepo) CreateBrand(ctx context.Context, b *models.Brand) error {
	return translate(r.DB.WithContext(ctx).Create(b).Error)
}

func (r *GormRepo) SaveBrand(ctx context.Context, b *models.Brand) error {
	return translate(r.DB.WithContext(ctx).Save(b).Error)
}

func (r *GormRepo) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return remove[models.Brand](ctx, r.DB, id)
}

// categories

func (r *GormRepo) ListCategories(ctx context.Context, p util.ListParams, typ string) (int64, []models.Category, error) {
	return list[models.Category](ctx, r.DB, p, equals("type", typ))
}

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return get[models.Category](ctx, r.DB, id)
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *GormRepo) SaveCategory(ctx context.Context, c *models.Category) error {
	return translate(r.DB.WithContext(ctx).Save(c).Error)
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return remove[models.Category](ctx, r.DB, id)
}

// blogs

func (r *GormRepo) ListBlogs(ctx context.Context, p util.ListParams, search string) (int64, []models.Blog, error) {
	return list[models.Blog](ctx, r.DB, p, filter.Contains(strings.TrimSpace(search), "title", "description"))
}

func (r *GormRepo) GetBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	return get[models.Blog](ctx, r.DB, id)
}

func (r *GormRepo) CreateBlog(ctx context.Context, b *models.Blog) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) SaveBlog(ctx context.Context, b *models.Blog) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	return remove[models.Blog](ctx, r.DB, id)
}

// faqs

func (r *GormRepo) ListFAQs(ctx context.Context, p util.ListParams, activeOnly bool) (int64, []models.FAQ, error) {
	active := func(db *gorm.DB) *gorm.DB {
		if !activeOnly {
			return db
		}
		return db.Where("is_active = ?", true)
	}
	return list[models.FAQ](ctx, r.DB, p, active)
}

func (r *GormRepo) GetFAQ(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	return get[models.FAQ](ctx, r.DB, id)
}

func (r *GormRepo) CreateFAQ(ctx context.Context, f *models.FAQ) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) SaveFAQ(ctx context.Context, f *models.FAQ) error {
	return r.DB.WithContext(ctx).Save(f).Error
}

func (r *GormRepo) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	return remove[models.FAQ](ctx, r.DB, id)
}

func (r *GormRepo) MaxFAQOrder(ctx context.Context) (int, error) {
	return maxInt[models.FAQ](ctx, r.DB, faqOrderColumn)
}

func (r *GormRepo) SwapFAQOrder(ctx context.Context, a, b uuid.UUID) error {
	return swapInt(ctx, r.DB, faqOrderColumn, a, b, func(f *models.FAQ) int { return f.Order })
}

func (r *GormRepo) MoveFAQ(ctx context.Context, id uuid.UUID, up bool) (bool, error) {
	return moveInt(ctx, r.DB, faqOrderColumn, id, up,
		func(f *models.FAQ) int { return f.Order },
		func(f *models.FAQ) uuid.UUID { return f.ID })
}

// hero slides

func (r *GormRepo) ListHeroSlides(ctx context.Context, p util.ListParams) (int64, []models.HeroSlide, error) {
	return list[models.HeroSlide](ctx, r.DB, p)
}

func (r *GormRepo) GetHeroSlide(ctx context.Context, id uuid.UUID) (*models.HeroSlide, error) {
	return get[models.HeroSlide](ctx, r.DB, id)
}

func (r *GormRepo) CreateHeroSlide(ctx context.Context, h *models.HeroSlide) error {
	return r.DB.WithContext(ctx).Create(h).Error
}

func (r *GormRepo) SaveHeroSlide(ctx context.Context, h *models.HeroSlide) error {
	return r.DB.WithContext(ctx).Save(h).Error
}

func (r *GormRepo) DeleteHeroSlide(ctx context.Context, id uuid.UUID) error {
	return remove[models.HeroSlide](ctx, r.DB, id)
}

func (r *GormRepo) MaxHeroPosition(ctx context.Context) (int, error) {
	return maxInt[models.HeroSlide](ctx, r.DB, heroPositionColumn)
}

func (r *GormRepo) SwapHeroPosition(ctx context.Context, a, b uuid.UUID) error {
	return swapInt(ctx, r.DB, heroPositionColumn, a, b, func(h *models.HeroSlide) int { return h.Position })
}

func (r *GormRepo) MoveHeroSlide(ctx context.Context, id uuid.UUID, up bool) (bool, error) {
	return moveInt(ctx, r.DB, heroPositionColumn, id, up,
		func(h *models.HeroSlide) int { return h.Position },
		func(h *models.HeroSlide) uuid.UUID { return h.ID })
}
