// Package store bundles the per-resource repositories behind a single value
// and picks the backing driver from configuration.
package store

import (
	"fmt"

	"aydamarket.com/api/internal/config"
	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/orders"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/store/gormstore"
	"aydamarket.com/api/internal/store/memstore"
)

type Store struct {
	Driver string

	Users      users.Repository
	Products   products.Repository
	Categories categories.Repository
	Carts      cart.Repository
	Orders     orders.Repository
}

// FromConfig builds either the MySQL-backed store or the in-memory mock,
// both satisfying the same repository interfaces.
func FromConfig(cfg config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case "mysql":
		db, err := gormstore.Open(cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql store: %w", err)
		}
		return &Store{
			Driver:     "mysql",
			Users:      gormstore.NewUserRepo(db),
			Products:   gormstore.NewProductRepo(db),
			Categories: gormstore.NewCategoryRepo(db),
			Carts:      gormstore.NewCartRepo(db),
			Orders:     gormstore.NewOrderRepo(db),
		}, nil

	case "memory":
		db := memstore.New(cfg.MemLatency)
		return &Store{
			Driver:     "memory",
			Users:      memstore.NewUserRepo(db),
			Products:   memstore.NewProductRepo(db),
			Categories: memstore.NewCategoryRepo(db),
			Carts:      memstore.NewCartRepo(db),
			Orders:     memstore.NewOrderRepo(db),
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
	}
}
