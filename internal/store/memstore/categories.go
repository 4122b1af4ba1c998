package memstore

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/products"
)

type CategoryRepo struct {
	db    *DB
	prods *ProductRepo
}

func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db, prods: NewProductRepo(db)}
}

func (r *CategoryRepo) List(_ context.Context, onlyActive bool) ([]categories.Category, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]categories.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		if onlyActive && !c.Active {
			continue
		}
		out = append(out, toModel(c, nil))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Get(_ context.Context, id string) (categories.Category, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[id]
	if !ok {
		return categories.Category{}, gorm.ErrRecordNotFound
	}
	return toModel(c, r.prods.list(false, id)), nil
}

func (r *CategoryRepo) Create(_ context.Context, c *categories.Category) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.categories[c.ID] = fromModel(*c)
	return nil
}

func (r *CategoryRepo) Update(_ context.Context, c *categories.Category) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.db.categories[c.ID] = fromModel(*c)
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.categories, id)
	for pid, p := range r.db.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.db.products[pid] = p
		}
	}
	return nil
}

func toModel(c category, prods []products.Product) categories.Category {
	return categories.Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Active:      c.Active,
		Products:    prods,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func fromModel(c categories.Category) category {
	return category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
