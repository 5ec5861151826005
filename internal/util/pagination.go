package util

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*size within int for any accepted size.
	MaxPage = math.MaxInt / MaxPageSize
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate clamps page and size and returns the row offset with the effective limit.
func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	offset = (page - 1) * size
	limit = size
	return offset, limit
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListParams is the page/sort part shared by every list endpoint.
type ListParams struct {
	Page   int
	Limit  int
	SortBy string
	Column string
	Desc   bool
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p ListParams) Pagination(total int64) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: TotalPages(total, p.Limit)}
}

// Order sorts by the chosen column and breaks ties on id so pages never overlap.
func (p ListParams) Order(db *gorm.DB) *gorm.DB {
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: p.Column}, Desc: p.Desc})
	if p.Column != "id" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return db
}

// ParseListParams reads page, limit, sortBy and sortOrder. sortable maps wire names to
// columns; unknown sortBy values fall back to defaultSort. sortOrder defaults to desc.
func ParseListParams(get func(string) string, sortable map[string]string, defaultSort string, defaultDesc bool) ListParams {
	page := ParseIntDefault(get("page"), 1)
	size := ParseIntDefault(get("limit"), DefaultPageSize)
	offset, limit := Calculate(page, size)

	sortBy := get("sortBy")
	column, ok := sortable[sortBy]
	if !ok {
		sortBy = defaultSort
		column = sortable[defaultSort]
	}

	desc := defaultDesc
	switch strings.ToLower(get("sortOrder")) {
	case "asc":
		desc = false
	case "desc":
		desc = true
	}

	return ListParams{
		Page:   offset/limit + 1,
		Limit:  limit,
		SortBy: sortBy,
		Column: column,
		Desc:   desc,
	}
}
