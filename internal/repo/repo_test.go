package repo

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/car_export/internal/filter"
	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/testutil"
	"github.com/Skotchmaster/car_export/internal/util"
)

func newRepo(t *testing.T) *GormRepo {
	t.Helper()
	return &GormRepo{DB: testutil.InitTestDB(t)}
}

func seedProducts(t *testing.T, r *GormRepo, n int) (models.Category, models.Brand) {
	t.Helper()
	cat := models.Category{Name: "Sedan", Type: models.CategoryTypeProduct}
	brand := models.Brand{Name: "Toyota", Thumbnail: "t.png"}
	testutil.MustCreate(t, r.DB, &cat, &brand)
	for i := 0; i < n; i++ {
		testutil.MustCreate(t, r.DB, &models.Product{
			Title: "Car", Year: 2010 + i, UnitPrice: 1000, FuelType: "Diesel", Thumbnail: "th.png",
			Images: []string{"a.png"}, CategoryID: cat.ID, MakeID: brand.ID,
		})
	}
	return cat, brand
}

func productQuery(t *testing.T, raw string) filter.ProductQuery {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := filter.ParseProductQuery(v)
	require.NoError(t, err)
	return q
}

func TestListProducts_PaginatesAndExpandsReferences(t *testing.T) {
	r := newRepo(t)
	cat, brand := seedProducts(t, r, 5)
	ctx := context.Background()

	total, items, err := r.ListProducts(ctx, productQuery(t, "page=2&limit=2&sortBy=year&sortOrder=asc"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, 2012, items[0].Year)
	assert.Equal(t, 2013, items[1].Year)

	require.NotNil(t, items[0].Category)
	require.NotNil(t, items[0].Make)
	assert.Equal(t, cat.ID, items[0].Category.ID)
	assert.Equal(t, "Sedan", items[0].Category.Name)
	assert.Empty(t, items[0].Category.Type, "only id and name are loaded")
	assert.Equal(t, brand.Name, items[0].Make.Name)
}

func TestListProducts_TotalIgnoresPagination(t *testing.T) {
	r := newRepo(t)
	seedProducts(t, r, 3)

	total, items, err := r.ListProducts(context.Background(), productQuery(t, "limit=1&yearFrom=2011"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 1)
}

func TestDeleteProduct_Twice(t *testing.T) {
	r := newRepo(t)
	seedProducts(t, r, 1)
	ctx := context.Background()

	_, items, err := r.ListProducts(ctx, productQuery(t, ""))
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID

	require.NoError(t, r.DeleteProduct(ctx, id))
	assert.ErrorIs(t, r.DeleteProduct(ctx, id), ErrNotFound)

	_, err = r.GetProduct(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveProduct_KeepsImagesOrder(t *testing.T) {
	r := newRepo(t)
	seedProducts(t, r, 1)
	ctx := context.Background()

	_, items, err := r.ListProducts(ctx, productQuery(t, ""))
	require.NoError(t, err)
	p := items[0]
	p.Images = []string{"z.png", "a.png", "m.png"}
	require.NoError(t, r.SaveProduct(ctx, &p))

	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"z.png", "a.png", "m.png"}, []string(got.Images))
}

func TestCountProductsReferencing(t *testing.T) {
	r := newRepo(t)
	cat, brand := seedProducts(t, r, 2)
	ctx := context.Background()

	n, err := r.CountProductsReferencing(ctx, "category_id", cat.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = r.CountProductsReferencing(ctx, "make_id", brand.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = r.CountProductsReferencing(ctx, "make_id", uuid.New())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteBrandAndCategory_ReferencedByProduct(t *testing.T) {
	r := newRepo(t)
	require.NoError(t, r.DB.Exec("PRAGMA foreign_keys = ON").Error)
	cat, brand := seedProducts(t, r, 1)
	ctx := context.Background()

	assert.ErrorIs(t, r.DeleteBrand(ctx, brand.ID), ErrReferenced)
	assert.ErrorIs(t, r.DeleteCategory(ctx, cat.ID), ErrReferenced)

	_, err := r.GetBrand(ctx, brand.ID)
	require.NoError(t, err)
	_, err = r.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
}

func TestEachProductBatch(t *testing.T) {
	r := newRepo(t)
	seedProducts(t, r, 5)

	var batches, seen int
	err := r.EachProductBatch(context.Background(), 2, func(items []models.Product) error {
		batches++
		seen += len(items)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, batches)
	assert.Equal(t, 5, seen)
}

func TestCreateBrand_Duplicate(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateBrand(ctx, &models.Brand{Name: "Nissan", Thumbnail: "n.png"}))
	err := r.CreateBrand(ctx, &models.Brand{Name: "Nissan", Thumbnail: "n2.png"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestListBrands_Search(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	testutil.MustCreate(t, r.DB,
		&models.Brand{Name: "Nissan", Thumbnail: "n.png"},
		&models.Brand{Name: "Mitsubishi", Thumbnail: "m.png"},
		&models.Brand{Name: "Isuzu", Thumbnail: "i.png"},
	)
	p := util.ParseListParams(url.Values{"sortBy": {"name"}, "sortOrder": {"asc"}}.Get, map[string]string{"name": "name"}, "name", false)

	total, items, err := r.ListBrands(ctx, p, "SS")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Nissan", items[0].Name)

	total, _, err = r.ListBrands(ctx, p, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestListCategories_Type(t *testing.T) {
	r := newRepo(t)
	testutil.MustCreate(t, r.DB,
		&models.Category{Name: "Sedan", Type: models.CategoryTypeProduct},
		&models.Category{Name: "Dump", Type: models.CategoryTypeTruck},
	)
	p := util.ParseListParams(url.Values{}.Get, map[string]string{"createdAt": "created_at"}, "createdAt", true)

	total, items, err := r.ListCategories(context.Background(), p, models.CategoryTypeTruck)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Dump", items[0].Name)
}

func seedFAQs(t *testing.T, r *GormRepo, orders ...int) []models.FAQ {
	t.Helper()
	out := make([]models.FAQ, len(orders))
	for i, o := range orders {
		out[i] = models.FAQ{Question: "q", Answer: "a", IsActive: true, Order: o}
		testutil.MustCreate(t, r.DB, &out[i])
	}
	return out
}

func TestSwapFAQOrder(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	faqs := seedFAQs(t, r, 0, 1, 2, 3)

	require.NoError(t, r.SwapFAQOrder(ctx, faqs[2].ID, faqs[1].ID))

	want := map[uuid.UUID]int{faqs[0].ID: 0, faqs[1].ID: 2, faqs[2].ID: 1, faqs[3].ID: 3}
	for id, order := range want {
		got, err := r.GetFAQ(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, order, got.Order)
	}
}

func TestSwapFAQOrder_Missing(t *testing.T) {
	r := newRepo(t)
	faqs := seedFAQs(t, r, 0)

	err := r.SwapFAQOrder(context.Background(), faqs[0].ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func faqOrders(t *testing.T, r *GormRepo, faqs []models.FAQ) []int {
	t.Helper()
	out := make([]int, len(faqs))
	for i, f := range faqs {
		got, err := r.GetFAQ(context.Background(), f.ID)
		require.NoError(t, err)
		out[i] = got.Order
	}
	return out
}

func TestMoveFAQ(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	faqs := seedFAQs(t, r, 0, 5, 9)

	moved, err := r.MoveFAQ(ctx, faqs[1].ID, true)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []int{5, 0, 9}, faqOrders(t, r, faqs))

	moved, err = r.MoveFAQ(ctx, faqs[0].ID, false)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []int{9, 0, 5}, faqOrders(t, r, faqs))

	moved, err = r.MoveFAQ(ctx, faqs[1].ID, true)
	require.NoError(t, err)
	assert.False(t, moved, "already first")
	moved, err = r.MoveFAQ(ctx, faqs[0].ID, false)
	require.NoError(t, err)
	assert.False(t, moved, "already last")

	_, err = r.MoveFAQ(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveFAQ_PassesTiedOrder(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	seedFAQs(t, r, 4, 4, 4)

	p := util.ParseListParams(url.Values{}.Get, map[string]string{"order": "sort_order"}, "order", false)
	_, before, err := r.ListFAQs(ctx, p, false)
	require.NoError(t, err)
	require.Len(t, before, 3)

	moved, err := r.MoveFAQ(ctx, before[2].ID, true)
	require.NoError(t, err)
	assert.True(t, moved)

	_, after, err := r.ListFAQs(ctx, p, false)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{before[0].ID, before[2].ID, before[1].ID}, []uuid.UUID{after[0].ID, after[1].ID, after[2].ID})
	assert.Equal(t, []int{0, 1, 2}, []int{after[0].Order, after[1].Order, after[2].Order})
}

func TestMoveHeroSlide(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	a := models.HeroSlide{MediaURL: "a.png", Position: 1}
	b := models.HeroSlide{MediaURL: "b.png", Position: 1}
	testutil.MustCreate(t, r.DB, &a, &b)

	first, second := a, b
	if b.ID.String() < a.ID.String() {
		first, second = b, a
	}
	moved, err := r.MoveHeroSlide(ctx, second.ID, true)
	require.NoError(t, err)
	assert.True(t, moved)

	gotFirst, err := r.GetHeroSlide(ctx, first.ID)
	require.NoError(t, err)
	gotSecond, err := r.GetHeroSlide(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotFirst.Position)
	assert.Equal(t, 0, gotSecond.Position)
}

func TestMaxFAQOrder(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	max, err := r.MaxFAQOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, max)

	seedFAQs(t, r, 3, 7)
	max, err = r.MaxFAQOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, max)
}

func TestListFAQs_ActiveOnly(t *testing.T) {
	r := newRepo(t)
	faqs := seedFAQs(t, r, 0, 1)
	faqs[1].IsActive = false
	require.NoError(t, r.SaveFAQ(context.Background(), &faqs[1]))

	p := util.ParseListParams(url.Values{}.Get, map[string]string{"order": "sort_order"}, "order", false)
	total, items, err := r.ListFAQs(context.Background(), p, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, faqs[0].ID, items[0].ID)

	total, _, err = r.ListFAQs(context.Background(), p, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestSwapHeroPosition(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	a := models.HeroSlide{MediaURL: "a.png", Position: 0}
	b := models.HeroSlide{MediaURL: "b.png", Position: 1}
	testutil.MustCreate(t, r.DB, &a, &b)

	require.NoError(t, r.SwapHeroPosition(ctx, a.ID, b.ID))

	gotA, err := r.GetHeroSlide(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := r.GetHeroSlide(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotA.Position)
	assert.Equal(t, 0, gotB.Position)
}

func TestContacts(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	msg := models.ContactMessage{Name: "Ann", Email: "ann@example.com", Message: "hi", Status: models.ContactStatusNew}
	require.NoError(t, r.CreateContact(ctx, &msg))

	updated, err := r.UpdateContactStatus(ctx, msg.ID, models.ContactStatusRead)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusRead, updated.Status)

	_, err = r.UpdateContactStatus(ctx, uuid.New(), models.ContactStatusRead)
	assert.ErrorIs(t, err, ErrNotFound)

	p := util.ParseListParams(url.Values{}.Get, map[string]string{"createdAt": "created_at"}, "createdAt", true)
	total, _, err := r.ListContacts(ctx, p, models.ContactStatusNew)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, r.DeleteContact(ctx, msg.ID))
	assert.ErrorIs(t, r.DeleteContact(ctx, msg.ID), ErrNotFound)
}

func TestAdminPassword(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	user := models.AdminUser{Username: "admin", PasswordHash: "old", Role: "admin"}
	require.NoError(t, r.CreateAdmin(ctx, &user))
	assert.ErrorIs(t, r.CreateAdmin(ctx, &models.AdminUser{Username: "admin", PasswordHash: "x", Role: "admin"}), ErrDuplicate)

	require.NoError(t, r.UpdateAdminPassword(ctx, user.ID, "new"))
	got, err := r.GetAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)

	_, err = r.GetAdminByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
