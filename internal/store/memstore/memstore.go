// Package memstore is an in-memory implementation of the resource
// repositories. It stands in for the MySQL store in dev setups and tests;
// an optional artificial latency mimics a remote backend.
package memstore

import (
	"sync"
	"time"

	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/modules/orders"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/modules/users"
)

type DB struct {
	mu      sync.RWMutex
	latency time.Duration

	users      map[string]users.User
	categories map[string]category
	products   map[string]products.Product
	reviews    map[string][]products.Review // by product id
	carts      map[string]cart.Cart         // by user id
	orders     map[string]orders.Order
	events     map[string][]orders.Event // by order id
}

// category is stored without its product list; Get assembles it on read.
type category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func New(latency time.Duration) *DB {
	return &DB{
		latency:    latency,
		users:      make(map[string]users.User),
		categories: make(map[string]category),
		products:   make(map[string]products.Product),
		reviews:    make(map[string][]products.Review),
		carts:      make(map[string]cart.Cart),
		orders:     make(map[string]orders.Order),
		events:     make(map[string][]orders.Event),
	}
}

func (d *DB) delay() {
	if d.latency > 0 {
		time.Sleep(d.latency)
	}
}
