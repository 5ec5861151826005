package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index"                json:"createdAt"`
	UpdatedAt time.Time `                            json:"updatedAt"`
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Brand struct {
	Base
	Name      string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Thumbnail string `gorm:"not null"                     json:"thumbnail"`
}

const (
	CategoryTypeProduct = "product"
	CategoryTypeTruck   = "truck"
)

type Category struct {
	Base
	Name      string `gorm:"not null"       json:"name"`
	Type      string `gorm:"not null;index" json:"type"`
	Thumbnail string `                      json:"thumbnail"`
}

type Blog struct {
	Base
	Title       string `gorm:"not null"  json:"title"`
	Description string `gorm:"not null"  json:"description"`
	Content     string `gorm:"type:text" json:"content"`
	Thumbnail   string `gorm:"not null"  json:"thumbnail"`
}

type FAQ struct {
	Base
	Question string `gorm:"not null"               json:"question"`
	Answer   string `gorm:"type:text;not null"     json:"answer"`
	IsActive bool   `                              json:"isActive"`
	Order    int    `gorm:"column:sort_order;index" json:"order"`
}

func (FAQ) TableName() string { return "faqs" }

type HeroSlide struct {
	Base
	MediaURL string `gorm:"not null" json:"mediaUrl"`
	Position int    `gorm:"index"    json:"position"`
}

const (
	ContactStatusNew       = "new"
	ContactStatusRead      = "read"
	ContactStatusResponded = "responded"
)

type ContactMessage struct {
	Base
	Name    string `gorm:"not null"       json:"name"`
	Email   string `gorm:"not null"       json:"email"`
	Phone   string `                      json:"phone,omitempty"`
	Message string `gorm:"type:text"      json:"message"`
	Status  string `gorm:"not null;index" json:"status"`
}

type AdminUser struct {
	Base
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Role         string `gorm:"not null"             json:"role"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Brand{}, &Category{}, &Product{}, &Blog{}, &FAQ{}, &HeroSlide{}, &ContactMessage{}, &AdminUser{},
	}
}

