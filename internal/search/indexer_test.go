package search

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/car_export/internal/events"
	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/testutil"
)

func seedIndexedProduct(t *testing.T, r *repo.GormRepo) models.Product {
	t.Helper()
	cat := models.Category{Name: "Sedan", Type: models.CategoryTypeProduct}
	brand := models.Brand{Name: "Toyota", Thumbnail: "t.png"}
	testutil.MustCreate(t, r.DB, &cat, &brand)
	prod := models.Product{
		Title: "Corolla", UnitPrice: 5000, Quantity: 1, FuelType: "Gasoline",
		Thumbnail: "t.png", Images: []string{"a.png"}, CategoryID: cat.ID, MakeID: brand.ID,
	}
	testutil.MustCreate(t, r.DB, &prod)
	return prod
}

func TestIndexer_Handle(t *testing.T) {
	fake, c := newFakeClient(t)
	r := &repo.GormRepo{DB: testutil.InitTestDB(t)}
	prod := seedIndexedProduct(t, r)
	ix := &Indexer{Index: c, Products: r}
	ctx := context.Background()

	require.NoError(t, ix.Handle(ctx, events.ProductEvent{Type: events.ProductUpdated, ProductID: prod.ID.String()}))
	docKey := "PUT /products/_doc/" + prod.ID.String()
	assert.Contains(t, fake.seen(), docKey)
	assert.Contains(t, fake.body(docKey), `"Corolla"`)

	gone := uuid.New()
	require.NoError(t, ix.Handle(ctx, events.ProductEvent{Type: events.ProductCreated, ProductID: gone.String()}))
	assert.Contains(t, fake.seen(), "DELETE /products/_doc/"+gone.String())

	require.NoError(t, ix.Handle(ctx, events.ProductEvent{Type: events.ProductDeleted, ProductID: prod.ID.String()}))
	assert.Contains(t, fake.seen(), "DELETE /products/_doc/"+prod.ID.String())

	before := len(fake.seen())
	require.NoError(t, ix.Handle(ctx, events.ProductEvent{Type: events.ProductDeleted, ProductID: "42"}))
	require.NoError(t, ix.Handle(ctx, events.ProductEvent{Type: "product_archived", ProductID: prod.ID.String()}))
	assert.Len(t, fake.seen(), before)
}

func TestIndexer_Reindex(t *testing.T) {
	fake, c := newFakeClient(t)
	r := &repo.GormRepo{DB: testutil.InitTestDB(t)}
	prod := seedIndexedProduct(t, r)
	ix := &Indexer{Index: c, Products: r}

	n, err := ix.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, fake.seen(), "PUT /products")
	assert.Contains(t, fake.body("POST /_bulk"), prod.ID.String())
}
