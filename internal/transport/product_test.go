package transport

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/car_export/internal/models"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "want ValidationErrors, got %v", err)
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field)
	}
	return out
}

func TestParseProductForm_Full(t *testing.T) {
	cat, brand := uuid.New(), uuid.New()
	in, err := ParseProductForm(map[string][]string{
		"title":              {" Corolla "},
		"category":           {cat.String()},
		"make":               {brand.String()},
		"year":               {"2015"},
		"unitPrice":          {"5000"},
		"discountPercentage": {"10"},
		"quantity":           {"2"},
		"weight":             {"1200"},
		"fuelType":           {"Gasoline"},
		"mileage":            {"15"},
		"chassis":            {"ABC123"},
		"airBags":            {"on"},
		"features.sunRoof":   {"true"},
		"abs":                {"false"},
		"existingImages":     {"a.png", "b.png"},
	})
	require.NoError(t, err)
	require.NoError(t, in.RequireForCreate())

	assert.Equal(t, "Corolla", *in.Title)
	assert.Equal(t, 2015, *in.Year)
	assert.Equal(t, cat, *in.CategoryID)
	assert.Equal(t, map[string]bool{"airBags": true, "sunRoof": true, "abs": false}, in.Features)
	assert.Equal(t, []string{"a.png", "b.png"}, in.ExistingImages)
	assert.Nil(t, in.Color)

	var p models.Product
	p.Features.Navigation = true
	in.ApplyTo(&p)
	assert.Equal(t, "Corolla", p.Title)
	assert.Equal(t, 10.0, p.DiscountPercentage)
	assert.Equal(t, brand, p.MakeID)
	assert.True(t, p.Features.AirBags)
	assert.True(t, p.Features.SunRoof)
	assert.True(t, p.Features.Navigation, "absent flags are left alone")
}

func TestParseProductForm_ExistingImages(t *testing.T) {
	tests := []struct {
		name   string
		values map[string][]string
		want   []string
	}{
		{name: "absent", values: map[string][]string{}, want: nil},
		{name: "json array", values: map[string][]string{"existingImages": {`["x.png","y.png"]`}}, want: []string{"x.png", "y.png"}},
		{name: "empty json array", values: map[string][]string{"existingImages": {`[]`}}, want: []string{}},
		{name: "blank value", values: map[string][]string{"existingImages": {""}}, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := ParseProductForm(tc.values)
			require.NoError(t, err)
			assert.Equal(t, tc.want, in.ExistingImages)
		})
	}
}

func TestParseProductForm_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string][]string
		field  string
	}{
		{name: "year not int", values: map[string][]string{"year": {"abc"}}, field: "year"},
		{name: "price not number", values: map[string][]string{"unitPrice": {"cheap"}}, field: "unitPrice"},
		{name: "infinite price", values: map[string][]string{"unitPrice": {"Inf"}}, field: "unitPrice"},
		{name: "infinite weight", values: map[string][]string{"weight": {"+Inf"}}, field: "weight"},
		{name: "nan mileage", values: map[string][]string{"mileage": {"NaN"}}, field: "mileage"},
		{name: "negative price", values: map[string][]string{"unitPrice": {"-1"}}, field: "unitPrice"},
		{name: "discount above 100", values: map[string][]string{"discountPercentage": {"101"}}, field: "discountPercentage"},
		{name: "bad fuel", values: map[string][]string{"fuelType": {"Steam"}}, field: "fuelType"},
		{name: "bad mileage unit", values: map[string][]string{"mileageUnit": {"km"}}, field: "mileageUnit"},
		{name: "illegal tag", values: map[string][]string{"tag": {"Buses"}}, field: "tag"},
		{name: "bad category id", values: map[string][]string{"category": {"42"}}, field: "category"},
		{name: "bad feature", values: map[string][]string{"tv": {"maybe"}}, field: "tv"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProductForm(tc.values)
			require.Error(t, err)
			assert.Contains(t, fieldsOf(t, err), tc.field)
		})
	}
}

func TestParseProductForm_EmptyTagAllowed(t *testing.T) {
	in, err := ParseProductForm(map[string][]string{"tag": {""}})
	require.NoError(t, err)

	p := models.Product{Tag: models.TagTrucks}
	in.ApplyTo(&p)
	assert.Empty(t, p.Tag)
}

func TestRequireForCreate(t *testing.T) {
	in, err := ParseProductForm(map[string][]string{"title": {"x"}})
	require.NoError(t, err)

	err = in.RequireForCreate()
	assert.ElementsMatch(t, []string{"category", "make", "year", "unitPrice", "fuelType"}, fieldsOf(t, err))
}

func TestValidate_Requests(t *testing.T) {
	id := uuid.New()

	assert.NoError(t, Validate(ContactRequest{Name: "a", Email: "a@b.co", Message: "hi"}))
	assert.Equal(t, []string{"email"}, fieldsOf(t, Validate(ContactRequest{Name: "a", Email: "nope", Message: "hi"})))

	assert.NoError(t, Validate(ReorderRequest{FirstID: id, SecondID: uuid.New()}))
	assert.Equal(t, []string{"secondId"}, fieldsOf(t, Validate(ReorderRequest{FirstID: id, SecondID: id})))
	assert.Equal(t, []string{"firstId"}, fieldsOf(t, Validate(ReorderRequest{SecondID: id})))

	assert.Equal(t, []string{"direction"}, fieldsOf(t, Validate(MoveRequest{Direction: "left"})))
	assert.Equal(t, []string{"status"}, fieldsOf(t, Validate(ContactStatusRequest{Status: "archived"})))
}

func TestNewProductResponse(t *testing.T) {
	catID := uuid.New()
	p := models.Product{
		Title: "Corolla", UnitPrice: 5000, DiscountPercentage: 10,
		CategoryID: catID, Category: &models.Category{Base: models.Base{ID: catID}, Name: "Sedan"},
		MakeID: uuid.New(),
	}

	raw, err := json.Marshal(NewProductResponse(&p))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 4500.0, body["discountedPrice"])
	assert.Equal(t, map[string]any{"id": catID.String(), "name": "Sedan"}, body["category"])
	assert.Equal(t, p.MakeID.String(), body["make"].(map[string]any)["id"])
	assert.Equal(t, []any{}, body["images"])
	assert.Contains(t, body, "features")
}

func TestCategoryResponse_Placeholder(t *testing.T) {
	got := CategoryResponses([]models.Category{{Name: "a"}, {Name: "b", Thumbnail: "b.png"}}, "/ph.png")
	assert.Equal(t, "/ph.png", got[0].Thumbnail)
	assert.Equal(t, "b.png", got[1].Thumbnail)
}
