package gormstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aydamarket.com/api/internal/modules/orders"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Place inserts the order and its items and applies the stock lines in a
// single transaction, retried on deadlock.
func (r *OrderRepo) Place(ctx context.Context, o *orders.Order, lines []orders.StockLine) error {
	return withTxRetry(ctx, r.db, 3, func(tx *gorm.DB) error {
		if err := deductStockInTx(ctx, tx, lines); err != nil {
			return err
		}
		return tx.WithContext(ctx).Create(o).Error
	})
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]orders.Order, error) {
	var items []orders.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *OrderRepo) List(ctx context.Context, in orders.ListParams) ([]orders.Order, int64, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&orders.Order{})
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []orders.Order
	err := q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error
	return items, total, err
}

func (r *OrderRepo) Get(ctx context.Context, id string) (orders.Order, error) {
	var o orders.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&o, "id = ?", id).Error
	return o, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to orders.Status) error {
	res := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Where("id = ? AND status = ?", id, from). // optimistic guard
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return orders.ErrInvalidTransition
	}
	return nil
}

func (r *OrderRepo) AppendEvent(ctx context.Context, ev *orders.Event) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *OrderRepo) ListEvents(ctx context.Context, orderID string) ([]orders.Event, error) {
	var items []orders.Event
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// deductStockInTx locks the product rows, verifies availability, then applies
// stock -= qty and sold += qty per line. Runs inside the caller's tx.
func deductStockInTx(ctx context.Context, tx *gorm.DB, lines []orders.StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	want := make(map[string]int, len(lines))
	for _, ln := range lines {
		q := ln.Qty
		if q < 1 {
			q = 1
		}
		want[ln.ProductID] += q
	}

	ids := make([]string, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}
	// deterministic lock order
	sort.Strings(ids)

	type productRow struct {
		ID    string `gorm:"column:id"`
		Stock int    `gorm:"column:stock"`
	}
	var rows []productRow
	if err := tx.WithContext(ctx).
		Table("products").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	avail := make(map[string]int, len(rows))
	for _, row := range rows {
		avail[row.ID] = row.Stock
	}

	var oos []orders.OutOfStockItem
	for _, id := range ids {
		req := want[id]
		av, ok := avail[id]
		if !ok || av < req {
			oos = append(oos, orders.OutOfStockItem{ProductID: id, Requested: req, Available: av})
		}
	}
	if len(oos) > 0 {
		return &orders.OutOfStockError{Items: oos}
	}

	for _, id := range ids {
		req := want[id]
		res := tx.WithContext(ctx).
			Table("products").
			Where("id = ?", id).
			Updates(map[string]any{
				"stock": gorm.Expr("stock - ?", req),
				"sold":  gorm.Expr("sold + ?", req),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return &orders.OutOfStockError{Items: []orders.OutOfStockItem{{ProductID: id, Requested: req, Available: 0}}}
		}
	}

	return nil
}

func withTxRetry(ctx context.Context, db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		lastErr = err

		if isRetryableMySQLError(err) && i < attempts-1 {
			time.Sleep(time.Duration(50*(i+1)) * time.Millisecond)
			continue
		}
		return err
	}
	return lastErr
}

func isRetryableMySQLError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1213: deadlock, 1205: lock wait timeout
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}
