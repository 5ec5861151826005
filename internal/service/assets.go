package service

import (
	"context"
	"log/slog"
	"mime/multipart"
	"slices"

	"github.com/Skotchmaster/car_export/internal/storage"
)

// uploadSet records every file stored while handling one request. If the database
// write that should reference them fails, rollback removes them again.
type uploadSet struct {
	store  storage.Store
	folder string
	urls   []string
}

func newUploadSet(store storage.Store, folder string) *uploadSet {
	return &uploadSet{store: store, folder: folder}
}

func (u *uploadSet) add(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	url, err := storage.UploadFile(ctx, u.store, u.folder, fh)
	if err != nil {
		return "", err
	}
	u.urls = append(u.urls, url)
	return url, nil
}

func (u *uploadSet) addAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := u.add(ctx, fh)
		if err != nil {
			return nil, err
		}
		out = append(out, url)
	}
	return out, nil
}

func (u *uploadSet) rollback(ctx context.Context, l *slog.Logger) {
	removeAssets(ctx, u.store, l, u.urls...)
	u.urls = nil
}

// removeAssets deletes stored files best-effort. Failures are logged and never returned,
// and the deletes run even if the request context was cancelled.
func removeAssets(ctx context.Context, store storage.Store, l *slog.Logger, urls ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := store.Delete(ctx, url); err != nil {
			l.Warn("asset_delete_failed", "url", url, "error", err)
		}
	}
}

// staleAssets returns the URLs of before that after no longer references.
func staleAssets(before, after []string) []string {
	var out []string
	for _, url := range before {
		if url != "" && !slices.Contains(after, url) && !slices.Contains(out, url) {
			out = append(out, url)
		}
	}
	return out
}

// thumbnailFallback decides the thumbnail of a product after an update. A thumbnail
// that is already set wins; otherwise the first remaining image is promoted. An empty
// result means the product has no usable thumbnail.
func thumbnailFallback(thumbnail string, images []string) string {
	if thumbnail != "" {
		return thumbnail
	}
	if len(images) > 0 {
		return images[0]
	}
	return ""
}

func hasFile(fh *multipart.FileHeader) bool {
	return fh != nil && fh.Size > 0
}
