package cart_test

import (
	"context"
	"errors"
	"testing"

	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/store/memstore"
)

func newFixture(t *testing.T) (*cart.Service, products.Repository) {
	t.Helper()
	db := memstore.New(0)
	prods := memstore.NewProductRepo(db)
	svc := cart.NewService(memstore.NewCartRepo(db), prods)
	return svc, prods
}

func seedProduct(t *testing.T, repo products.Repository, id, name string, priceCents int64, active bool) {
	t.Helper()
	p := products.Product{
		ID:         id,
		Name:       name,
		Slug:       name,
		PriceCents: priceCents,
		Stock:      100,
		Active:     active,
	}
	if err := repo.Create(context.Background(), &p); err != nil {
		t.Fatalf("seed product %s: %v", id, err)
	}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	svc, prods := newFixture(t)
	ctx := context.Background()
	seedProduct(t, prods, "p1", "tea", 100, true)
	seedProduct(t, prods, "p2", "mug", 50, true)

	if _, err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add p1 again: %v", err)
	}
	sum, err := svc.Add(ctx, "u1", "p2")
	if err != nil {
		t.Fatalf("add p2: %v", err)
	}

	if len(sum.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(sum.Items))
	}
	if sum.Count != 3 {
		t.Errorf("count = %d, want 3", sum.Count)
	}
	if sum.TotalCents != 2*100+50 {
		t.Errorf("total = %d, want %d", sum.TotalCents, 2*100+50)
	}
}

func TestAddInactiveProduct(t *testing.T) {
	svc, prods := newFixture(t)
	seedProduct(t, prods, "p1", "ghost", 100, false)

	_, err := svc.Add(context.Background(), "u1", "p1")
	if !errors.Is(err, cart.ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
}

func TestDecreaseFloorsAtOne(t *testing.T) {
	svc, prods := newFixture(t)
	ctx := context.Background()
	seedProduct(t, prods, "p1", "tea", 100, true)

	if _, err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	sum, err := svc.Decrease(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if len(sum.Items) != 1 || sum.Items[0].Quantity != 1 {
		t.Fatalf("decrease at qty 1 must be a no-op, got %+v", sum.Items)
	}

	if _, err := svc.Increase(ctx, "u1", "p1"); err != nil {
		t.Fatalf("increase: %v", err)
	}
	sum, err = svc.Decrease(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("decrease from 2: %v", err)
	}
	if sum.Items[0].Quantity != 1 {
		t.Errorf("qty = %d, want 1", sum.Items[0].Quantity)
	}
}

func TestSetQuantity(t *testing.T) {
	svc, prods := newFixture(t)
	ctx := context.Background()
	seedProduct(t, prods, "p1", "tea", 100, true)

	if _, err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	sum, err := svc.SetQuantity(ctx, "u1", "p1", 5)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if sum.Items[0].Quantity != 5 || sum.TotalCents != 500 {
		t.Errorf("qty=%d total=%d, want 5/500", sum.Items[0].Quantity, sum.TotalCents)
	}

	if _, err := svc.SetQuantity(ctx, "u1", "p1", 0); !errors.Is(err, cart.ErrBadQuantity) {
		t.Errorf("set 0 err = %v, want ErrBadQuantity", err)
	}

	// setting a product that is not in the cart changes nothing
	sum, err = svc.SetQuantity(ctx, "u1", "missing", 3)
	if err != nil {
		t.Fatalf("set missing: %v", err)
	}
	if len(sum.Items) != 1 {
		t.Errorf("items = %+v", sum.Items)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc, prods := newFixture(t)
	ctx := context.Background()
	seedProduct(t, prods, "p1", "tea", 100, true)
	seedProduct(t, prods, "p2", "mug", 50, true)

	if _, err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "p2"); err != nil {
		t.Fatalf("add: %v", err)
	}

	sum, err := svc.Remove(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(sum.Items) != 1 || sum.Items[0].ProductID != "p2" {
		t.Fatalf("after remove: %+v", sum.Items)
	}

	sum, err = svc.Clear(ctx, "u1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(sum.Items) != 0 || sum.TotalCents != 0 {
		t.Fatalf("after clear: %+v", sum)
	}
}

func TestSnapshotSurvivesPriceChange(t *testing.T) {
	svc, prods := newFixture(t)
	ctx := context.Background()
	seedProduct(t, prods, "p1", "tea", 100, true)

	if _, err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	p, err := prods.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	p.PriceCents = 999
	if err := prods.Update(ctx, &p); err != nil {
		t.Fatalf("update product: %v", err)
	}

	sum, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if sum.Items[0].PriceCents != 100 {
		t.Errorf("snapshot price = %d, want 100", sum.Items[0].PriceCents)
	}
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc, prods := newFixture(t)
	ctx := context.Background()
	seedProduct(t, prods, "p1", "tea", 100, true)

	if _, err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	sum, err := svc.Get(ctx, "u2")
	if err != nil {
		t.Fatalf("get u2 cart: %v", err)
	}
	if len(sum.Items) != 0 {
		t.Fatalf("u2 sees u1's items: %+v", sum.Items)
	}
}
