// Package storage uploads and deletes image files and addresses them by public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	FolderProducts   = "products"
	FolderBrands     = "brands"
	FolderCategories = "categories"
	FolderBlogs      = "blogs"
	FolderHero       = "hero"
)

// ErrForeignURL is returned by Delete for URLs this store did not hand out.
var ErrForeignURL = errors.New("url is not managed by this store")

type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// ObjectKey builds folder/{unix-millis}-{random}{ext}, keeping the original extension.
func ObjectKey(folder, originalName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return path.Join(folder, fmt.Sprintf("%d-%09d%s", now.UnixMilli(), rand.IntN(1_000_000_000), ext))
}

// UploadFile streams one multipart file into folder and returns its public URL.
func UploadFile(ctx context.Context, s Store, folder string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.Upload(ctx, ObjectKey(folder, fh.Filename, time.Now()), f, fh.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", fh.Filename, err)
	}
	return url, nil
}

// NonEmpty drops nil headers and zero-byte files.
func NonEmpty(files []*multipart.FileHeader) []*multipart.FileHeader {
	out := make([]*multipart.FileHeader, 0, len(files))
	for _, fh := range files {
		if fh != nil && fh.Size > 0 {
			out = append(out, fh)
		}
	}
	return out
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func keyFromURL(base, url string) (string, error) {
	prefix := strings.TrimRight(base, "/") + "/"
	key, ok := strings.CutPrefix(url, prefix)
	if !ok || key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	return key, nil
}
