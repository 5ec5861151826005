package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/cache"
	"github.com/Skotchmaster/car_export/internal/events"
)

type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type EventPublisher interface {
	PublishProduct(ctx context.Context, ev events.ProductEvent) error
}

type ProductSearcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error)
}

// invalidateProducts drops cached product lists and the detail entries of ids.
// Cache failures are logged, never returned.
func invalidateProducts(ctx context.Context, c Cache, l *slog.Logger, ids ...uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.DeleteByPattern(ctx, cache.ProductListPattern); err != nil {
		l.Warn("cache_invalidate_failed", "pattern", cache.ProductListPattern, "error", err)
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cache.ProductKey(id))
	}
	if err := c.Delete(ctx, keys...); err != nil {
		l.Warn("cache_invalidate_failed", "keys", keys, "error", err)
	}
}

// invalidateCatalog drops every cached product read. Details embed brand and
// category names, so renames must not outlive the TTL.
func invalidateCatalog(ctx context.Context, c Cache, l *slog.Logger) {
	if c == nil {
		return
	}
	invalidateProducts(ctx, c, l)
	if err := c.DeleteByPattern(ctx, cache.ProductDetailPattern); err != nil {
		l.Warn("cache_invalidate_failed", "pattern", cache.ProductDetailPattern, "error", err)
	}
}
