// Package gormstore is the MySQL-backed implementation of the resource
// repositories.
package gormstore

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/orders"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/modules/users"
)

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&users.User{},
		&categories.Category{},
		&products.Product{},
		&products.Image{},
		&products.Review{},
		&cart.Cart{},
		&cart.Item{},
		&orders.Order{},
		&orders.Item{},
		&orders.Event{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
