package products

import (
	"context"
	"time"
)

type Product struct {
	ID         string  `gorm:"primaryKey;type:char(36)" json:"id"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	Slug       string  `gorm:"size:255;not null;index:ix_products_slug" json:"slug"`
	PriceCents int64   `gorm:"not null" json:"price_cents"`
	Stock      int     `gorm:"not null;default:0" json:"stock"`
	Sold       int     `gorm:"not null;default:0" json:"sold"`
	Active     bool    `gorm:"not null;default:true" json:"active"`
	CategoryID *string `gorm:"type:char(36);index:ix_products_category" json:"category_id"`

	Images []Image `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type Image struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	ProductID string    `gorm:"type:char(36);not null;index:ix_product_images_product" json:"product_id"`
	// StorageKey is the blob-store key; URL is what clients render.
	StorageKey string    `gorm:"size:512;not null" json:"-"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Image) TableName() string { return "product_images" }

type Review struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	ProductID string    `gorm:"type:char(36);not null;index:ix_product_reviews_product" json:"product_id"`
	UserID    string    `gorm:"type:char(36);not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Body      string    `gorm:"size:2000" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string { return "product_reviews" }

type Repository interface {
	// List returns the catalog; onlyActive hides inactive products from the
	// storefront while the admin panel sees everything.
	List(ctx context.Context, onlyActive bool) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID string, onlyActive bool) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error

	AddImage(ctx context.Context, im *Image) error
	GetImage(ctx context.Context, productID, imageID string) (Image, error)
	DeleteImage(ctx context.Context, productID, imageID string) error

	AddReview(ctx context.Context, rv *Review) error
	ListReviews(ctx context.Context, productID string) ([]Review, error)
}
