package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/storage"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/internal/util"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type CategoryService struct {
	Repo  *repo.GormRepo
	Store storage.Store
	Cache Cache
}

func (s *CategoryService) List(ctx context.Context, p util.ListParams, typ string) (int64, []models.Category, error) {
	return s.Repo.ListCategories(ctx, p, typ)
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.Repo.GetCategory(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in transport.CategoryInput, thumbnail *multipart.FileHeader) (*models.Category, error) {
	l := logging.FromContext(ctx).With("svc", "category.create")

	if in.Name == nil || *in.Name == "" {
		return nil, invalid("name is required")
	}
	cat := models.Category{Name: *in.Name, Type: models.CategoryTypeProduct}
	if in.Type != nil {
		cat.Type = *in.Type
	}

	uploads := newUploadSet(s.Store, storage.FolderCategories)
	if hasFile(thumbnail) {
		url, err := uploads.add(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		cat.Thumbnail = url
	}

	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}
	return &cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in transport.CategoryInput, thumbnail *multipart.FileHeader) (*models.Category, error) {
	l := logging.FromContext(ctx).With("svc", "category.update", "category_id", id)

	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	before := cat.Thumbnail
	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.Type != nil {
		cat.Type = *in.Type
	}

	uploads := newUploadSet(s.Store, storage.FolderCategories)
	if hasFile(thumbnail) {
		url, err := uploads.add(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		cat.Thumbnail = url
	}

	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}

	removeAssets(ctx, s.Store, l, staleAssets([]string{before}, []string{cat.Thumbnail})...)
	invalidateCatalog(ctx, s.Cache, l)
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "category.delete", "category_id", id)

	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.Repo.CountProductsReferencing(ctx, "category_id", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("category is used by %d products", n)
	}
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repo.ErrReferenced) {
			return conflict("category is used by products")
		}
		return err
	}

	removeAssets(ctx, s.Store, l, cat.Thumbnail)
	invalidateCatalog(ctx, s.Cache, l)
	return nil
}
