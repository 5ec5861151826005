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

type BrandService struct {
	Repo  *repo.GormRepo
	Store storage.Store
	Cache Cache
}

func (s *BrandService) List(ctx context.Context, p util.ListParams, search string) (int64, []models.Brand, error) {
	return s.Repo.ListBrands(ctx, p, search)
}

func (s *BrandService) Get(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return s.Repo.GetBrand(ctx, id)
}

func (s *BrandService) Create(ctx context.Context, in transport.BrandInput, thumbnail *multipart.FileHeader) (*models.Brand, error) {
	l := logging.FromContext(ctx).With("svc", "brand.create")

	if in.Name == nil || *in.Name == "" {
		return nil, invalid("name is required")
	}
	if !hasFile(thumbnail) {
		return nil, invalid("thumbnail is required")
	}

	uploads := newUploadSet(s.Store, storage.FolderBrands)
	url, err := uploads.add(ctx, thumbnail)
	if err != nil {
		return nil, err
	}

	brand := models.Brand{Name: *in.Name, Thumbnail: url}
	if err := s.Repo.CreateBrand(ctx, &brand); err != nil {
		uploads.rollback(ctx, l)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, conflict("brand %q already exists", brand.Name)
		}
		return nil, err
	}
	return &brand, nil
}

func (s *BrandService) Update(ctx context.Context, id uuid.UUID, in transport.BrandInput, thumbnail *multipart.FileHeader) (*models.Brand, error) {
	l := logging.FromContext(ctx).With("svc", "brand.update", "brand_id", id)

	brand, err := s.Repo.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	before := brand.Thumbnail
	if in.Name != nil {
		brand.Name = *in.Name
	}

	uploads := newUploadSet(s.Store, storage.FolderBrands)
	if hasFile(thumbnail) {
		url, err := uploads.add(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		brand.Thumbnail = url
	}

	if err := s.Repo.SaveBrand(ctx, brand); err != nil {
		uploads.rollback(ctx, l)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, conflict("brand %q already exists", brand.Name)
		}
		return nil, err
	}

	removeAssets(ctx, s.Store, l, staleAssets([]string{before}, []string{brand.Thumbnail})...)
	invalidateCatalog(ctx, s.Cache, l)
	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "brand.delete", "brand_id", id)

	brand, err := s.Repo.GetBrand(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.Repo.CountProductsReferencing(ctx, "make_id", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("brand is used by %d products", n)
	}
	if err := s.Repo.DeleteBrand(ctx, id); err != nil {
		if errors.Is(err, repo.ErrReferenced) {
			return conflict("brand is used by products")
		}
		return err
	}

	removeAssets(ctx, s.Store, l, brand.Thumbnail)
	invalidateCatalog(ctx, s.Cache, l)
	return nil
}
