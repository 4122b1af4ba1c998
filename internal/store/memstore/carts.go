package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/cart"
)

type CartRepo struct{ db *DB }

func NewCartRepo(db *DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) GetOrCreate(_ context.Context, userID string) (cart.Cart, error) {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if c, ok := r.db.carts[userID]; ok {
		return cloneCart(c), nil
	}
	now := time.Now()
	c := cart.Cart{ID: uuid.NewString(), UserID: userID, Items: []cart.Item{}, CreatedAt: now, UpdatedAt: now}
	r.db.carts[userID] = c
	return cloneCart(c), nil
}

func (r *CartRepo) AddItem(_ context.Context, it *cart.Item) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	userID, ok := r.findUser(it.CartID)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c := r.db.carts[userID]
	c.Items = append(append([]cart.Item{}, c.Items...), *it)
	c.UpdatedAt = time.Now()
	r.db.carts[userID] = c
	return nil
}

func (r *CartRepo) UpdateItemQty(_ context.Context, cartID, productID string, qty int) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	userID, ok := r.findUser(cartID)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c := r.db.carts[userID]
	items := append([]cart.Item{}, c.Items...)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
		}
	}
	c.Items = items
	c.UpdatedAt = time.Now()
	r.db.carts[userID] = c
	return nil
}

func (r *CartRepo) RemoveItem(_ context.Context, cartID, productID string) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	userID, ok := r.findUser(cartID)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c := r.db.carts[userID]
	kept := make([]cart.Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	c.UpdatedAt = time.Now()
	r.db.carts[userID] = c
	return nil
}

func (r *CartRepo) Clear(_ context.Context, cartID string) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	userID, ok := r.findUser(cartID)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c := r.db.carts[userID]
	c.Items = []cart.Item{}
	c.UpdatedAt = time.Now()
	r.db.carts[userID] = c
	return nil
}

// findUser assumes a lock is held.
func (r *CartRepo) findUser(cartID string) (string, bool) {
	for userID, c := range r.db.carts {
		if c.ID == cartID {
			return userID, true
		}
	}
	return "", false
}

func cloneCart(c cart.Cart) cart.Cart {
	c.Items = append([]cart.Item{}, c.Items...)
	return c
}
