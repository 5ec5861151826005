package transport

import (
	"github.com/google/uuid"
)

type BrandInput struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=50"`
}

func ParseBrandForm(values map[string][]string) (BrandInput, error) {
	f := newFormReader(values)
	in := BrandInput{Name: f.str("name")}
	if err := f.err(); err != nil {
		return in, err
	}
	return in, Validate(in)
}

type CategoryInput struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=100"`
	Type *string `json:"type" validate:"omitnil,oneof=product truck"`
}

func ParseCategoryForm(values map[string][]string) (CategoryInput, error) {
	f := newFormReader(values)
	in := CategoryInput{Name: f.str("name"), Type: f.str("type")}
	if in.Type != nil && *in.Type == "" {
		in.Type = nil
	}
	if err := f.err(); err != nil {
		return in, err
	}
	return in, Validate(in)
}

type BlogInput struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,min=1,max=500"`
	Content     *string `json:"content"`
}

func ParseBlogForm(values map[string][]string) (BlogInput, error) {
	f := newFormReader(values)
	in := BlogInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Content:     f.str("content"),
	}
	if err := f.err(); err != nil {
		return in, err
	}
	return in, Validate(in)
}

type HeroInput struct {
	Position *int `json:"position" validate:"omitnil,min=0"`
}

func ParseHeroForm(values map[string][]string) (HeroInput, error) {
	f := newFormReader(values)
	in := HeroInput{Position: f.int("position")}
	if err := f.err(); err != nil {
		return in, err
	}
	return in, Validate(in)
}

type FAQRequest struct {
	Question *string `json:"question" form:"question" validate:"omitnil,min=1,max=500"`
	Answer   *string `json:"answer"   form:"answer"   validate:"omitnil,min=1"`
	IsActive *bool   `json:"isActive" form:"isActive"`
	Order    *int    `json:"order"    form:"order"    validate:"omitnil,min=0"`
}

// ReorderRequest names two distinct items whose order values are exchanged.
type ReorderRequest struct {
	FirstID  uuid.UUID `json:"firstId"  form:"firstId"  validate:"required"`
	SecondID uuid.UUID `json:"secondId" form:"secondId" validate:"required"`
}

type MoveRequest struct {
	Direction string `json:"direction" form:"direction" validate:"required,oneof=up down"`
}

type ContactRequest struct {
	Name    string `json:"name"    form:"name"    validate:"required,max=100"`
	Email   string `json:"email"   form:"email"   validate:"required,email"`
	Phone   string `json:"phone"   form:"phone"   validate:"omitempty,max=30"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

type ContactStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=new read responded"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     form:"newPassword"     validate:"required,min=8,max=72"`
}
