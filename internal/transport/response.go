package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/util"
)

type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ListResponse struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data"`
	Pagination util.Pagination `json:"pagination"`
}

type ErrorResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Error   string           `json:"error,omitempty"`
	Fields  ValidationErrors `json:"fields,omitempty"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MoveResponse struct {
	Success bool `json:"success"`
	Moved   bool `json:"moved"`
}

// Ref is a referenced entity expanded to its id and name.
type Ref struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ProductResponse struct {
	models.Product
	DiscountedPrice float64 `json:"discountedPrice"`
	Category        *Ref    `json:"category"`
	Make            *Ref    `json:"make"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{Product: *p, DiscountedPrice: p.DiscountedPrice()}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.Category != nil {
		resp.Category = &Ref{ID: p.Category.ID, Name: p.Category.Name}
	} else if p.CategoryID != uuid.Nil {
		resp.Category = &Ref{ID: p.CategoryID}
	}
	if p.Make != nil {
		resp.Make = &Ref{ID: p.Make.ID, Name: p.Make.Name}
	} else if p.MakeID != uuid.Nil {
		resp.Make = &Ref{ID: p.MakeID}
	}
	return resp
}

func NewProductResponses(items []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, NewProductResponse(&items[i]))
	}
	return out
}

// CategoryResponse substitutes placeholder when no thumbnail is stored.
func CategoryResponse(c models.Category, placeholder string) models.Category {
	if c.Thumbnail == "" {
		c.Thumbnail = placeholder
	}
	return c
}

func CategoryResponses(items []models.Category, placeholder string) []models.Category {
	out := make([]models.Category, 0, len(items))
	for _, c := range items {
		out = append(out, CategoryResponse(c, placeholder))
	}
	return out
}
