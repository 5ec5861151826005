package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/transport"
	"github.com/Skotchmaster/car_export/internal/util"
)

type FAQService struct {
	Repo *repo.GormRepo
}

func (s *FAQService) List(ctx context.Context, p util.ListParams, activeOnly bool) (int64, []models.FAQ, error) {
	return s.Repo.ListFAQs(ctx, p, activeOnly)
}

func (s *FAQService) Get(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	return s.Repo.GetFAQ(ctx, id)
}

// Create appends the FAQ after the current last one unless an order is given.
func (s *FAQService) Create(ctx context.Context, req transport.FAQRequest) (*models.FAQ, error) {
	if req.Question == nil || *req.Question == "" {
		return nil, invalid("question is required")
	}
	if req.Answer == nil || *req.Answer == "" {
		return nil, invalid("answer is required")
	}

	faq := models.FAQ{Question: *req.Question, Answer: *req.Answer, IsActive: true}
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}
	if req.Order != nil {
		faq.Order = *req.Order
	} else {
		max, err := s.Repo.MaxFAQOrder(ctx)
		if err != nil {
			return nil, err
		}
		faq.Order = max + 1
	}

	if err := s.Repo.CreateFAQ(ctx, &faq); err != nil {
		return nil, err
	}
	return &faq, nil
}

func (s *FAQService) Update(ctx context.Context, id uuid.UUID, req transport.FAQRequest) (*models.FAQ, error) {
	faq, err := s.Repo.GetFAQ(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Question != nil {
		faq.Question = *req.Question
	}
	if req.Answer != nil {
		faq.Answer = *req.Answer
	}
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}
	if req.Order != nil {
		faq.Order = *req.Order
	}
	if err := s.Repo.SaveFAQ(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *FAQService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteFAQ(ctx, id)
}

// Reorder exchanges the order values of two FAQs atomically.
func (s *FAQService) Reorder(ctx context.Context, first, second uuid.UUID) error {
	return swapResult(s.Repo.SwapFAQOrder(ctx, first, second))
}

// Move swaps the FAQ with its neighbour. Moving the first item up or the last one down
// changes nothing and reports false.
func (s *FAQService) Move(ctx context.Context, id uuid.UUID, up bool) (bool, error) {
	return s.Repo.MoveFAQ(ctx, id, up)
}

func swapResult(err error) error {
	if errors.Is(err, repo.ErrStale) {
		return conflict("order changed concurrently, reload and retry")
	}
	return err
}
