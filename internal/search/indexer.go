package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/events"
	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/pkg/logging"
)

const reindexBatch = 200

type ProductSource interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	EachProductBatch(ctx context.Context, batch int, fn func([]models.Product) error) error
}

// Indexer keeps the product index in step with the database.
type Indexer struct {
	Index    *Client
	Products ProductSource
}

// Handle applies one product event. The document is always rebuilt from the current
// database row, so replayed or reordered events converge on the stored state.
func (ix *Indexer) Handle(ctx context.Context, ev events.ProductEvent) error {
	l := logging.FromContext(ctx).With("svc", "indexer.handle", "type", ev.Type, "product_id", ev.ProductID)

	id, err := uuid.Parse(ev.ProductID)
	if err != nil {
		l.Warn("event_skipped", "reason", "product id is not a uuid", "error", err)
		return nil
	}

	switch ev.Type {
	case events.ProductDeleted:
		return ix.Index.DeleteProduct(ctx, id.String())
	case events.ProductCreated, events.ProductUpdated:
		prod, err := ix.Products.GetProduct(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			l.Info("product_gone", "reason", "deleted before indexing")
			return ix.Index.DeleteProduct(ctx, id.String())
		}
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		return ix.Index.IndexProduct(ctx, DocumentFromProduct(prod))
	default:
		l.Warn("event_skipped", "reason", "unknown event type")
		return nil
	}
}

// Reindex pushes every stored product into the index and returns how many were sent.
func (ix *Indexer) Reindex(ctx context.Context) (int, error) {
	if err := ix.Index.EnsureIndex(ctx); err != nil {
		return 0, err
	}
	n := 0
	err := ix.Products.EachProductBatch(ctx, reindexBatch, func(batch []models.Product) error {
		docs := make([]Document, 0, len(batch))
		for i := range batch {
			docs = append(docs, DocumentFromProduct(&batch[i]))
		}
		if err := ix.Index.BulkIndex(ctx, docs); err != nil {
			return err
		}
		n += len(docs)
		return nil
	})
	return n, err
}
