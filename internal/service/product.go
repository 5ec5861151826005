package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/cache"
	"github.com/Skotchmaster/car_export/internal/events"
	"github.com/Skotchmaster/car_export/internal/filter"
	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/storage"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/internal/util"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

type ProductService struct {
	Repo   *repo.GormRepo
	Store  storage.Store
	Cache  Cache
	Events EventPublisher
	// Search is optional; without it free-text search runs against the database.
	Search ProductSearcher
}

type ProductPage struct {
	Items      []transport.ProductResponse `json:"items"`
	Pagination util.Pagination             `json:"pagination"`
}

// ProductFiles are the uploaded files of a product form.
type ProductFiles struct {
	Thumbnail *multipart.FileHeader
	Images    []*multipart.FileHeader
}

func (s *ProductService) List(ctx context.Context, q filter.ProductQuery) (*ProductPage, error) {
	l := logging.FromContext(ctx).With("svc", "product.list")
	key := cache.ProductListKey(q.CacheKey())

	var page ProductPage
	if s.cacheGet(ctx, l, key, &page) {
		return &page, nil
	}

	total, items, err := s.Repo.ListProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	page = ProductPage{
		Items:      transport.NewProductResponses(items),
		Pagination: q.Pagination(total),
	}
	s.cacheSet(ctx, l, key, page)
	return &page, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*transport.ProductResponse, error) {
	l := logging.FromContext(ctx).With("svc", "product.get")
	key := cache.ProductKey(id)

	var resp transport.ProductResponse
	if s.cacheGet(ctx, l, key, &resp) {
		return &resp, nil
	}

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp = transport.NewProductResponse(prod)
	s.cacheSet(ctx, l, key, resp)
	return &resp, nil
}

// SearchProducts ranks products with the search index and falls back to the
// database substring search when no index is configured or it fails.
func (s *ProductService) SearchProducts(ctx context.Context, query string, p util.ListParams) (*ProductPage, error) {
	l := logging.FromContext(ctx).With("svc", "product.search")

	if s.Search != nil && query != "" {
		total, ids, err := s.Search.Search(ctx, query, p.Offset(), p.Limit)
		if err == nil {
			items, err := s.Repo.GetProductsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			rank := make(map[uuid.UUID]int, len(ids))
			for i, id := range ids {
				rank[id] = i
			}
			slices.SortFunc(items, func(a, b models.Product) int { return rank[a.ID] - rank[b.ID] })
			return &ProductPage{Items: transport.NewProductResponses(items), Pagination: p.Pagination(total)}, nil
		}
		l.Warn("search_index_failed", "reason", "falling back to database search", "error", err)
	}

	return s.List(ctx, filter.ProductQuery{ListParams: p, Search: query})
}

func (s *ProductService) Create(ctx context.Context, in transport.ProductInput, files ProductFiles) (*transport.ProductResponse, error) {
	l := logging.FromContext(ctx).With("svc", "product.create")

	if err := in.RequireForCreate(); err != nil {
		return nil, err
	}
	if !hasFile(files.Thumbnail) {
		return nil, invalid("thumbnail is required")
	}
	images := storage.NonEmpty(files.Images)
	if len(images) == 0 {
		return nil, invalid("at least one image is required")
	}
	if err := s.checkRefs(ctx, in.CategoryID, in.MakeID); err != nil {
		return nil, err
	}

	prod := models.Product{MileageUnit: models.DefaultMileageUnit}
	in.ApplyTo(&prod)

	uploads := newUploadSet(s.Store, storage.FolderProducts)
	thumb, err := uploads.add(ctx, files.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}
	urls, err := uploads.addAll(ctx, images)
	if err != nil {
		uploads.rollback(ctx, l)
		return nil, fmt.Errorf("upload images: %w", err)
	}
	prod.Thumbnail = thumb
	prod.Images = urls

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}

	return s.afterWrite(ctx, l, &prod, events.ProductCreated), nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, in transport.ProductInput, files ProductFiles) (*transport.ProductResponse, error) {
	l := logging.FromContext(ctx).With("svc", "product.update", "product_id", id)

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	before := prod.References()

	var catID, makeID *uuid.UUID
	if in.CategoryID != nil && *in.CategoryID != prod.CategoryID {
		catID = in.CategoryID
	}
	if in.MakeID != nil && *in.MakeID != prod.MakeID {
		makeID = in.MakeID
	}
	if err := s.checkRefs(ctx, catID, makeID); err != nil {
		return nil, err
	}

	kept := keptImages(prod.Images, in.ExistingImages)
	newImages := storage.NonEmpty(files.Images)
	if len(kept)+len(newImages) == 0 {
		return nil, invalid("at least one image is required")
	}

	in.ApplyTo(prod)
	prod.Category, prod.Make = nil, nil

	uploads := newUploadSet(s.Store, storage.FolderProducts)
	if hasFile(files.Thumbnail) {
		thumb, err := uploads.add(ctx, files.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
		prod.Thumbnail = thumb
	}
	added, err := uploads.addAll(ctx, newImages)
	if err != nil {
		uploads.rollback(ctx, l)
		return nil, fmt.Errorf("upload images: %w", err)
	}
	prod.Images = append(kept, added...)

	prod.Thumbnail = thumbnailFallback(prod.Thumbnail, prod.Images)
	if prod.Thumbnail == "" {
		uploads.rollback(ctx, l)
		return nil, invalid("thumbnail is required")
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}

	removeAssets(ctx, s.Store, l, staleAssets(before, prod.References())...)
	return s.afterWrite(ctx, l, prod, events.ProductUpdated), nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "product.delete", "product_id", id)

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	removeAssets(ctx, s.Store, l, prod.References()...)
	invalidateProducts(ctx, s.Cache, l, id)
	s.publish(ctx, l, prod, events.ProductDeleted)
	return nil
}

// keptImages returns the current images the caller asked to keep, in the caller's order.
// A nil keep list means the field was not sent and every image stays.
func keptImages(current []string, keep []string) []string {
	if keep == nil {
		return slices.Clone(current)
	}
	out := make([]string, 0, len(keep))
	for _, url := range keep {
		if slices.Contains(current, url) && !slices.Contains(out, url) {
			out = append(out, url)
		}
	}
	return out
}

func (s *ProductService) checkRefs(ctx context.Context, categoryID, makeID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *categoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return invalid("category %s does not exist", categoryID)
			}
			return err
		}
	}
	if makeID != nil {
		if _, err := s.Repo.GetBrand(ctx, *makeID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return invalid("make %s does not exist", makeID)
			}
			return err
		}
	}
	return nil
}

// afterWrite reloads the product with its references, drops stale cache entries and
// publishes the change event.
func (s *ProductService) afterWrite(ctx context.Context, l *slog.Logger, prod *models.Product, evType string) *transport.ProductResponse {
	invalidateProducts(ctx, s.Cache, l, prod.ID)
	s.publish(ctx, l, prod, evType)

	if fresh, err := s.Repo.GetProduct(ctx, prod.ID); err == nil {
		prod = fresh
	} else {
		l.Warn("product_reload_failed", "product_id", prod.ID, "error", err)
	}
	resp := transport.NewProductResponse(prod)
	return &resp
}

func (s *ProductService) publish(ctx context.Context, l *slog.Logger, prod *models.Product, evType string) {
	if s.Events == nil {
		return
	}
	ev := events.ProductEvent{
		Type:       evType,
		ProductID:  prod.ID.String(),
		Title:      prod.Title,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishProduct(context.WithoutCancel(ctx), ev); err != nil {
		l.Warn("product_event_failed", "type", evType, "product_id", prod.ID, "error", err)
	}
}

func (s *ProductService) cacheGet(ctx context.Context, l *slog.Logger, key string, dest any) bool {
	if s.Cache == nil {
		return false
	}
	err := s.Cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		l.Warn("cache_get_failed", "key", key, "error", err)
	}
	return false
}

func (s *ProductService) cacheSet(ctx context.Context, l *slog.Logger, key string, value any) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, value); err != nil {
		l.Warn("cache_set_failed", "key", key, "error", err)
	}
}
