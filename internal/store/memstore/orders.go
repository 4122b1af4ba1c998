package memstore

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/orders"
)

type OrderRepo struct{ db *DB }

func NewOrderRepo(db *DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Place(_ context.Context, o *orders.Order, lines []orders.StockLine) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	want := make(map[string]int, len(lines))
	for _, ln := range lines {
		q := ln.Qty
		if q < 1 {
			q = 1
		}
		want[ln.ProductID] += q
	}

	var oos []orders.OutOfStockItem
	for id, req := range want {
		p, ok := r.db.products[id]
		if !ok || p.Stock < req {
			oos = append(oos, orders.OutOfStockItem{ProductID: id, Requested: req, Available: p.Stock})
		}
	}
	if len(oos) > 0 {
		sort.Slice(oos, func(i, j int) bool { return oos[i].ProductID < oos[j].ProductID })
		return &orders.OutOfStockError{Items: oos}
	}

	for id, req := range want {
		p := r.db.products[id]
		p.Stock -= req
		p.Sold += req
		r.db.products[id] = p
	}

	r.db.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *OrderRepo) ListByUser(_ context.Context, userID string) ([]orders.Order, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []orders.Order
	for _, o := range r.db.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderRepo) List(_ context.Context, in orders.ListParams) ([]orders.Order, int64, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	var all []orders.Order
	for _, o := range r.db.orders {
		if in.Status != "" && string(o.Status) != in.Status {
			continue
		}
		all = append(all, cloneOrder(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (page - 1) * size
	if start >= len(all) {
		return []orders.Order{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *OrderRepo) Get(_ context.Context, id string) (orders.Order, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	o, ok := r.db.orders[id]
	if !ok {
		return orders.Order{}, gorm.ErrRecordNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, from, to orders.Status) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	o, ok := r.db.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if o.Status != from {
		return orders.ErrInvalidTransition
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	r.db.orders[id] = o
	return nil
}

func (r *OrderRepo) AppendEvent(_ context.Context, ev *orders.Event) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.events[ev.OrderID] = append(r.db.events[ev.OrderID], *ev)
	return nil
}

func (r *OrderRepo) ListEvents(_ context.Context, orderID string) ([]orders.Event, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := append([]orders.Event{}, r.db.events[orderID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func cloneOrder(o orders.Order) orders.Order {
	o.Items = append([]orders.Item{}, o.Items...)
	return o
}
