package memstore

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/products"
)

func TestNotFoundSentinel(t *testing.T) {
	db := New(0)
	ctx := context.Background()

	if _, err := NewUserRepo(db).Get(ctx, "nope"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("users.Get err = %v", err)
	}
	if _, err := NewProductRepo(db).Get(ctx, "nope"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("products.Get err = %v", err)
	}
	if _, err := NewCategoryRepo(db).Get(ctx, "nope"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("categories.Get err = %v", err)
	}
	if _, err := NewOrderRepo(db).Get(ctx, "nope"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("orders.Get err = %v", err)
	}
}

func TestCategoryDeleteDetachesProducts(t *testing.T) {
	db := New(0)
	ctx := context.Background()
	cats := NewCategoryRepo(db)
	prods := NewProductRepo(db)

	if err := cats.Create(ctx, &categories.Category{ID: "c1", Name: "Tea", Active: true}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	catID := "c1"
	p := products.Product{ID: "p1", Name: "Green Tea", Active: true, CategoryID: &catID}
	if err := prods.Create(ctx, &p); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := cats.Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	got, err := prods.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("product gone with its category: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("category ref = %q, want cleared", *got.CategoryID)
	}
}

func TestCategoryGetIncludesProducts(t *testing.T) {
	db := New(0)
	ctx := context.Background()
	cats := NewCategoryRepo(db)
	prods := NewProductRepo(db)

	if err := cats.Create(ctx, &categories.Category{ID: "c1", Name: "Tea", Active: true}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	catID := "c1"
	for _, id := range []string{"p1", "p2"} {
		p := products.Product{ID: id, Name: id, Active: true, CategoryID: &catID}
		if err := prods.Create(ctx, &p); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	inactive := products.Product{ID: "p3", Name: "p3", Active: false, CategoryID: &catID}
	if err := prods.Create(ctx, &inactive); err != nil {
		t.Fatalf("create p3: %v", err)
	}

	got, err := cats.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// the category view carries all of its products, active or not
	if len(got.Products) != 3 {
		t.Errorf("len(products) = %d, want 3", len(got.Products))
	}
}

func TestProductAliasingSafety(t *testing.T) {
	db := New(0)
	ctx := context.Background()
	prods := NewProductRepo(db)

	p := products.Product{ID: "p1", Name: "original", Active: true}
	if err := prods.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := prods.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Name = "mutated"
	got.Images = append(got.Images, products.Image{ID: "im1"})

	again, err := prods.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Name != "original" || len(again.Images) != 0 {
		t.Errorf("store leaked aliased state: %+v", again)
	}
}
