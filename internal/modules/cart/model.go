package cart

import (
	"context"
	"time"
)

type Cart struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_carts_user" json:"user_id"`
	Items     []Item    `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cart) TableName() string { return "carts" }

// Item snapshots the product's display fields at add time so the cart keeps
// rendering even if the product changes afterwards.
type Item struct {
	ID         string    `gorm:"primaryKey;type:char(36)" json:"id"`
	CartID     string    `gorm:"type:char(36);not null;index:ix_cart_items_cart" json:"-"`
	ProductID  string    `gorm:"type:char(36);not null" json:"product_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	ImageURL   string    `gorm:"size:512" json:"image"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"added_at"`
}

func (Item) TableName() string { return "cart_items" }

func (i Item) LineTotalCents() int64 { return i.PriceCents * int64(i.Quantity) }

type Repository interface {
	// GetOrCreate returns the user's cart with items in insertion order,
	// creating an empty cart on first use.
	GetOrCreate(ctx context.Context, userID string) (Cart, error)
	AddItem(ctx context.Context, it *Item) error
	UpdateItemQty(ctx context.Context, cartID, productID string, qty int) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}
