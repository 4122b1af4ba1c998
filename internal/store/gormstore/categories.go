package gormstore

import (
	"context"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/products"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context, onlyActive bool) ([]categories.Category, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var items []categories.Category
	err := q.Find(&items).Error
	return items, err
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (categories.Category, error) {
	var c categories.Category
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Products.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		First(&c, "id = ?", id).Error
	return c, err
}

func (r *CategoryRepo) Create(ctx context.Context, c *categories.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepo) Update(ctx context.Context, c *categories.Category) error {
	return r.db.WithContext(ctx).Omit("Products").Save(c).Error
}

// Delete removes the category and detaches its products so no product keeps a
// dangling category reference.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&products.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&categories.Category{}, "id = ?", id).Error
	})
}
