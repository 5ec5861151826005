// Package filter turns product listing query strings into gorm scopes.
package filter

import (
	"bytes"
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/car_export/internal/util"
)

// ProductSortable maps the sortBy values accepted on the wire to product columns.
var ProductSortable = map[string]string{
	"createdAt":          "created_at",
	"updatedAt":          "updated_at",
	"title":              "title",
	"year":               "year",
	"unitPrice":          "unit_price",
	"discountPercentage": "discount_percentage",
	"quantity":           "quantity",
	"mileage":            "mileage",
	"weight":             "weight",
}

// searchColumns are matched by the free-text search term, any one of them is enough.
var searchColumns = []string{
	"title", "model", "chassis", "color", "axle_configuration", "vehicle_grade", "description",
}

type ProductQuery struct {
	util.ListParams

	CategoryIDs []uuid.UUID
	BrandIDs    []uuid.UUID

	MinPrice, MaxPrice     *float64
	YearFrom, YearTo       *int
	MinMileage, MaxMileage *float64

	FuelType          string
	AxleConfiguration string
	VehicleGrade      string
	Tag               string

	Chassis string
	Color   string
	Model   string

	Search string
}

type ParamError struct {
	Param string
	Msg   string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Msg)
}

func ParseProductQuery(v url.Values) (ProductQuery, error) {
	q := ProductQuery{
		ListParams: util.ParseListParams(v.Get, ProductSortable, "createdAt", true),

		FuelType:          strings.TrimSpace(v.Get("fuelType")),
		AxleConfiguration: strings.TrimSpace(v.Get("axleConfiguration")),
		VehicleGrade:      strings.TrimSpace(v.Get("vehicleGrade")),
		Tag:               strings.TrimSpace(v.Get("tag")),
		Chassis:           strings.TrimSpace(v.Get("chassis")),
		Color:             strings.TrimSpace(v.Get("color")),
		Model:             strings.TrimSpace(v.Get("model")),
		Search:            strings.TrimSpace(v.Get("search")),
	}

	var err error
	if q.CategoryIDs, err = parseIDList("category", v.Get("category")); err != nil {
		return q, err
	}
	if q.BrandIDs, err = parseIDList("brand", v.Get("brand")); err != nil {
		return q, err
	}
	if q.MinPrice, err = parseFloat("minPrice", v.Get("minPrice")); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parseFloat("maxPrice", v.Get("maxPrice")); err != nil {
		return q, err
	}
	if q.YearFrom, err = parseInt("yearFrom", v.Get("yearFrom")); err != nil {
		return q, err
	}
	if q.YearTo, err = parseInt("yearTo", v.Get("yearTo")); err != nil {
		return q, err
	}
	if q.MinMileage, err = parseFloat("minMileage", v.Get("minMileage")); err != nil {
		return q, err
	}
	if q.MaxMileage, err = parseFloat("maxMileage", v.Get("maxMileage")); err != nil {
		return q, err
	}

	return q, nil
}

// Scope applies every filter with AND semantics. Pagination and ordering are not applied.
func (q ProductQuery) Scope(db *gorm.DB) *gorm.DB {
	db = inIDs(db, "category_id", q.CategoryIDs)
	db = inIDs(db, "make_id", q.BrandIDs)

	if q.MinPrice != nil {
		db = db.Where("unit_price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("unit_price <= ?", *q.MaxPrice)
	}
	if q.YearFrom != nil {
		db = db.Where("year >= ?", *q.YearFrom)
	}
	if q.YearTo != nil {
		db = db.Where("year <= ?", *q.YearTo)
	}
	if q.MinMileage != nil {
		db = db.Where("mileage >= ?", *q.MinMileage)
	}
	if q.MaxMileage != nil {
		db = db.Where("mileage <= ?", *q.MaxMileage)
	}

	for _, f := range []struct{ col, val string }{
		{"fuel_type", q.FuelType},
		{"axle_configuration", q.AxleConfiguration},
		{"vehicle_grade", q.VehicleGrade},
		{"tag", q.Tag},
	} {
		if f.val != "" {
			db = db.Where(f.col+" = ?", f.val)
		}
	}

	for _, f := range []struct{ col, val string }{
		{"chassis", q.Chassis},
		{"color", q.Color},
		{"model", q.Model},
	} {
		if f.val != "" {
			db = db.Where(containsClause(f.col), containsPattern(f.val))
		}
	}

	return Contains(q.Search, searchColumns...)(db)
}

// Contains matches rows where any of columns contains term, ignoring case. An empty term matches everything.
func Contains(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		pattern := containsPattern(term)
		for i, col := range columns {
			clauses[i] = containsClause(col)
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// CacheKey is a canonical encoding of the query, equal for equivalent query strings.
// Id lists are already sorted and deduplicated by ParseProductQuery.
func (q ProductQuery) CacheKey() string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("sortBy", q.SortBy)
	if q.Desc {
		v.Set("sortOrder", "desc")
	} else {
		v.Set("sortOrder", "asc")
	}
	for _, id := range q.CategoryIDs {
		v.Add("category", id.String())
	}
	for _, id := range q.BrandIDs {
		v.Add("brand", id.String())
	}
	setFloat(v, "minPrice", q.MinPrice)
	setFloat(v, "maxPrice", q.MaxPrice)
	setFloat(v, "minMileage", q.MinMileage)
	setFloat(v, "maxMileage", q.MaxMileage)
	if q.YearFrom != nil {
		v.Set("yearFrom", strconv.Itoa(*q.YearFrom))
	}
	if q.YearTo != nil {
		v.Set("yearTo", strconv.Itoa(*q.YearTo))
	}
	for key, val := range map[string]string{
		"fuelType":          q.FuelType,
		"axleConfiguration": q.AxleConfiguration,
		"vehicleGrade":      q.VehicleGrade,
		"tag":               q.Tag,
		"chassis":           strings.ToLower(q.Chassis),
		"color":             strings.ToLower(q.Color),
		"model":             strings.ToLower(q.Model),
		"search":            strings.ToLower(q.Search),
	} {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v.Encode()
}

func inIDs(db *gorm.DB, column string, ids []uuid.UUID) *gorm.DB {
	switch len(ids) {
	case 0:
		return db
	case 1:
		return db.Where(column+" = ?", ids[0])
	default:
		return db.Where(column+" IN ?", ids)
	}
}

func containsClause(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

func parseIDList(param, raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, &ParamError{Param: param, Msg: fmt.Sprintf("%q is not a valid id", p)}
		}
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return slices.Compact(out), nil
}

func parseFloat(param, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ParamError{Param: param, Msg: "must be a number"}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, &ParamError{Param: param, Msg: "must be a finite number"}
	}
	return &f, nil
}

func parseInt(param, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ParamError{Param: param, Msg: "must be an integer"}
	}
	return &n, nil
}

func setFloat(v url.Values, key string, f *float64) {
	if f != nil {
		v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
	}
}
