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

type BlogService struct {
	Repo  *repo.GormRepo
	Store storage.Store
}

func (s *BlogService) List(ctx context.Context, p util.ListParams, search string) (int64, []models.Blog, error) {
	return s.Repo.ListBlogs(ctx, p, search)
}

func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	return s.Repo.GetBlog(ctx, id)
}

func (s *BlogService) Create(ctx context.Context, in transport.BlogInput, thumbnail *multipart.FileHeader) (*models.Blog, error) {
	l := logging.FromContext(ctx).With("svc", "blog.create")

	for _, f := range []struct {
		name string
		v    *string
	}{{"title", in.Title}, {"description", in.Description}, {"content", in.Content}} {
		if f.v == nil || *f.v == "" {
			return nil, invalid("%s is required", f.name)
		}
	}
	if !hasFile(thumbnail) {
		return nil, invalid("thumbnail is required")
	}

	uploads := newUploadSet(s.Store, storage.FolderBlogs)
	url, err := uploads.add(ctx, thumbnail)
	if err != nil {
		return nil, err
	}

	blog := models.Blog{Title: *in.Title, Description: *in.Description, Content: *in.Content, Thumbnail: url}
	if err := s.Repo.CreateBlog(ctx, &blog); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}
	return &blog, nil
}

func (s *BlogService) Update(ctx context.Context, id uuid.UUID, in transport.BlogInput, thumbnail *multipart.FileHeader) (*models.Blog, error) {
	l := logging.FromContext(ctx).With("svc", "blog.update", "blog_id", id)

	blog, err := s.Repo.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	before := blog.Thumbnail
	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Description != nil {
		blog.Description = *in.Description
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}

	uploads := newUploadSet(s.Store, storage.FolderBlogs)
	if hasFile(thumbnail) {
		url, err := uploads.add(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		blog.Thumbnail = url
	}

	if err := s.Repo.SaveBlog(ctx, blog); err != nil {
		uploads.rollback(ctx, l)
		return nil, err
	}

	removeAssets(ctx, s.Store, l, staleAssets([]string{before}, []string{blog.Thumbnail})...)
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "blog.delete", "blog_id", id)

	blog, err := s.Repo.GetBlog(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteBlog(ctx, id); err != nil {
		return err
	}
	removeAssets(ctx, s.Store, l, blog.Thumbnail)
	return nil
}
