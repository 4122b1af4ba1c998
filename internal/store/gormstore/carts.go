package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/cart"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (cart.Cart, error) {
	var c cart.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		c = cart.Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
		if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
			return cart.Cart{}, err
		}
		c.Items = []cart.Item{}
		return c, nil
	}
	return c, err
}

func (r *CartRepo) AddItem(ctx context.Context, it *cart.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *CartRepo) UpdateItemQty(ctx context.Context, cartID, productID string, qty int) error {
	return r.db.WithContext(ctx).
		Model(&cart.Item{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", qty).Error
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&cart.Item{}).Error
}

func (r *CartRepo) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&cart.Item{}).Error
}
