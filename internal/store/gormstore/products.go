package gormstore

import (
	"context"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/products"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(ctx context.Context, onlyActive bool) ([]products.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Order("created_at DESC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var items []products.Product
	err := q.Find(&items).Error
	return items, err
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string, onlyActive bool) ([]products.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Where("category_id = ?", categoryID).
		Order("created_at DESC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var items []products.Product
	err := q.Find(&items).Error
	return items, err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (products.Product, error) {
	var p products.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		First(&p, "id = ?", id).Error
	return p, err
}

func (r *ProductRepo) Create(ctx context.Context, p *products.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) Update(ctx context.Context, p *products.Product) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: false}).
		Omit("Images").
		Save(p).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&products.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&products.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&products.Product{}, "id = ?", id).Error
	})
}

func (r *ProductRepo) AddImage(ctx context.Context, im *products.Image) error {
	return r.db.WithContext(ctx).Create(im).Error
}

func (r *ProductRepo) GetImage(ctx context.Context, productID, imageID string) (products.Image, error) {
	var im products.Image
	err := r.db.WithContext(ctx).First(&im, "id = ? AND product_id = ?", imageID, productID).Error
	return im, err
}

func (r *ProductRepo) DeleteImage(ctx context.Context, productID, imageID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&products.Image{}).Error
}

func (r *ProductRepo) AddReview(ctx context.Context, rv *products.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ProductRepo) ListReviews(ctx context.Context, productID string) ([]products.Review, error) {
	var items []products.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
