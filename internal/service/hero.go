package service

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/storage"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/internal/util"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type HeroService struct {
	Repo  *repo.GormRepo
	Store storage.Store
}

func (s *HeroService) List(ctx context.Context, p util.ListParams) (int64, []models.HeroSlide, error) {
	return s.Repo.ListHeroSlides(ctx, p)
}

func (s *HeroService) Get(ctx context.Context, id uuid.UUID) (*models.HeroSlide, error) {
	return s.Repo.GetHeroSlide(ctx, id)
}

func (s *HeroService) Create(ctx context.Context, in transport.HeroInput, media *multipart.FileHeader) (*models.HeroSlide, error) {
	l := logging.FromContext(ctx).With("svc", "hero.create")

	if !hasFile(media) {
		return nil, invalid("media is required")
	}

	slide := models.HeroSlide{}
	if in.Position != nil {
		slide.Position = *in.Position
	} else {
		max, err := s.Repo.MaxHeroPosition(ctx)
		if err != nil {
			return nil, err
		}
		slide.Position = max + 1
	}

	uploads := newUploadSet(s.Store, storage.FolderHero)
	url, err := uploads.add(ctx, media)
	if err != nil {
		return nil, err
	}
	slide.MediaURL = url

	if err := s.Repo.CreateHeroSlide(ctx, &slide); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}
	return &slide, nil
}

func (s *HeroService) Update(ctx context.Context, id uuid.UUID, in transport.HeroInput, media *multipart.FileHeader) (*models.HeroSlide, error) {
	l := logging.FromContext(ctx).With("svc", "hero.update", "hero_id", id)

	slide, err := s.Repo.GetHeroSlide(ctx, id)
	if err != nil {
		return nil, err
	}
	before := slide.MediaURL
	if in.Position != nil {
		slide.Position = *in.Position
	}

	uploads := newUploadSet(s.Store, storage.FolderHero)
	if hasFile(media) {
		url, err := uploads.add(ctx, media)
		if err != nil {
			return nil, err
		}
		slide.MediaURL = url
	}

	if err := s.Repo.SaveHeroSlide(ctx, slide); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}

	removeAssets(ctx, s.Store, l, staleAssets([]string{before}, []string{slide.MediaURL})...)
	return slide, nil
}

func (s *HeroService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "hero.delete", "hero_id", id)

	slide, err := s.Repo.GetHeroSlide(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteHeroSlide(ctx, id); err != nil {
		return err
	}
	removeAssets(ctx, s.Store, l, slide.MediaURL)
	return nil
}

func (s *HeroService) Reorder(ctx context.Context, first, second uuid.UUID) error {
	return swapResult(s.Repo.SwapHeroPosition(ctx, first, second))
}

func (s *HeroService) Move(ctx context.Context, id uuid.UUID, up bool) (bool, error) {
	return s.Repo.MoveHeroSlide(ctx, id, up)
}
