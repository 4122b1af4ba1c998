package memstore

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/products"
)

type ProductRepo struct{ db *DB }

func NewProductRepo(db *DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(_ context.Context, onlyActive bool) ([]products.Product, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.list(onlyActive, ""), nil
}

func (r *ProductRepo) ListByCategory(_ context.Context, categoryID string, onlyActive bool) ([]products.Product, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.list(onlyActive, categoryID), nil
}

// list assumes the read lock is held.
func (r *ProductRepo) list(onlyActive bool, categoryID string) []products.Product {
	out := make([]products.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		if onlyActive && !p.Active {
			continue
		}
		if categoryID != "" && (p.CategoryID == nil || *p.CategoryID != categoryID) {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *ProductRepo) Get(_ context.Context, id string) (products.Product, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.products[id]
	if !ok {
		return products.Product{}, gorm.ErrRecordNotFound
	}
	return clone(p), nil
}

func (r *ProductRepo) Create(_ context.Context, p *products.Product) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.products[p.ID] = clone(*p)
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *products.Product) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.products[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := clone(*p)
	next.Images = existing.Images // images change through Add/DeleteImage only
	r.db.products[p.ID] = next
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.products, id)
	delete(r.db.reviews, id)
	return nil
}

func (r *ProductRepo) AddImage(_ context.Context, im *products.Image) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.products[im.ProductID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Images = append(append([]products.Image{}, p.Images...), *im)
	r.db.products[p.ID] = p
	return nil
}

func (r *ProductRepo) GetImage(_ context.Context, productID, imageID string) (products.Image, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.products[productID]
	if !ok {
		return products.Image{}, gorm.ErrRecordNotFound
	}
	for _, im := range p.Images {
		if im.ID == imageID {
			return im, nil
		}
	}
	return products.Image{}, gorm.ErrRecordNotFound
}

func (r *ProductRepo) DeleteImage(_ context.Context, productID, imageID string) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.products[productID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	kept := make([]products.Image, 0, len(p.Images))
	for _, im := range p.Images {
		if im.ID != imageID {
			kept = append(kept, im)
		}
	}
	p.Images = kept
	r.db.products[p.ID] = p
	return nil
}

func (r *ProductRepo) AddReview(_ context.Context, rv *products.Review) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.products[rv.ProductID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.db.reviews[rv.ProductID] = append(r.db.reviews[rv.ProductID], *rv)
	return nil
}

func (r *ProductRepo) ListReviews(_ context.Context, productID string) ([]products.Review, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := append([]products.Review{}, r.db.reviews[productID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func clone(p products.Product) products.Product {
	p.Images = append([]products.Image{}, p.Images...)
	return p
}
