package categories

import (
	"context"
	"time"

	"aydamarket.com/api/internal/modules/products"
)

type Category struct {
	ID          string `gorm:"primaryKey;type:char(36)" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Slug        string `gorm:"size:255;not null;index:ix_categories_slug" json:"slug"`
	Description string `gorm:"size:2000" json:"description"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	Products []products.Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type Repository interface {
	List(ctx context.Context, onlyActive bool) ([]Category, error)
	// Get loads the category together with its products.
	Get(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	// Delete removes the category and clears the category reference on its
	// products; the products themselves survive, uncategorized.
	Delete(ctx context.Context, id string) error
}
