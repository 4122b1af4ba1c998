package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aydamarket.com/api/internal/auth"
	"aydamarket.com/api/internal/config"
	apphttp "aydamarket.com/api/internal/http"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/storage"
	"aydamarket.com/api/internal/store"
	"aydamarket.com/api/internal/store/memstore"
	"aydamarket.com/api/pkg/client"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin12345"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		StoreDriver: "memory",
		JWTSecret:   []byte("router-test-secret"),
		TokenTTL:    time.Hour,
	}

	db := memstore.New(0)
	st := &store.Store{
		Driver:     "memory",
		Users:      memstore.NewUserRepo(db),
		Products:   memstore.NewProductRepo(db),
		Categories: memstore.NewCategoryRepo(db),
		Carts:      memstore.NewCartRepo(db),
		Orders:     memstore.NewOrderRepo(db),
	}

	// bootstrap admin straight into the store
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	if err := st.Users.Create(context.Background(), &users.User{
		ID:           "admin-1",
		Username:     "admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         users.RoleAdmin,
		CreatedAt:    time.Now(),
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	blobs := storage.NewLocal(t.TempDir(), "/uploads")

	srv := httptest.NewServer(apphttp.NewRouter(logger, cfg, st, blobs))
	t.Cleanup(srv.Close)
	return srv
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func adminClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	c := client.New(srv.URL)
	if _, err := c.Login(context.Background(), adminEmail, adminPassword); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	return c
}

func shopperClient(t *testing.T, srv *httptest.Server, email string) *client.Client {
	t.Helper()
	c := client.New(srv.URL)
	ctx := context.Background()
	if _, err := c.Register(ctx, client.RegisterInput{
		Username: "shopper",
		Email:    email,
		Password: "shopper123",
	}); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	if _, err := c.Login(ctx, email, "shopper123"); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return c
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *client.APIError", err)
	}
	if apiErr.StatusCode != status {
		t.Fatalf("status = %d, want %d (message %q)", apiErr.StatusCode, status, apiErr.Message)
	}
}

func TestHealthz(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestCartRequiresAuth(t *testing.T) {
	srv := newServer(t)
	c := client.New(srv.URL)

	_, err := c.Cart(context.Background())
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestAdminEndpointsRejectCustomers(t *testing.T) {
	srv := newServer(t)
	shopper := shopperClient(t, srv, "s1@example.com")

	_, err := shopper.CreateProduct(context.Background(), client.ProductInput{Name: "nope", Active: true})
	wantStatus(t, err, http.StatusForbidden)

	_, err = shopper.AdminUsers(context.Background())
	wantStatus(t, err, http.StatusForbidden)
}

func TestRegisterCannotSelfPromote(t *testing.T) {
	srv := newServer(t)
	c := client.New(srv.URL)

	u, err := c.Register(context.Background(), client.RegisterInput{
		Username: "sneaky",
		Email:    "sneaky@example.com",
		Password: "sneaky1234",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != "user" {
		t.Errorf("role = %q, want user", u.Role)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := newServer(t)
	c := client.New(srv.URL)

	_, err := c.Register(context.Background(), client.RegisterInput{
		Username: "x",
		Email:    "not-an-email",
		Password: "123",
	})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *client.APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apiErr.StatusCode)
	}
	for _, field := range []string{"username", "email", "password"} {
		if apiErr.Fields[field] == "" {
			t.Errorf("missing field error for %q in %v", field, apiErr.Fields)
		}
	}
}

func TestDuplicateEmailConflicts(t *testing.T) {
	srv := newServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()

	in := client.RegisterInput{Username: "ayda", Email: "dupe@example.com", Password: "password1"}
	if _, err := c.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := c.Register(ctx, in)
	wantStatus(t, err, http.StatusConflict)
}

func TestStorefrontHidesInactiveProducts(t *testing.T) {
	srv := newServer(t)
	admin := adminClient(t, srv)
	ctx := context.Background()

	if _, err := admin.CreateProduct(ctx, client.ProductInput{Name: "Visible", PriceCents: 100, Stock: 5, Active: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := admin.CreateProduct(ctx, client.ProductInput{Name: "Hidden", PriceCents: 100, Stock: 5, Active: false}); err != nil {
		t.Fatalf("create: %v", err)
	}

	anon := client.New(srv.URL)
	list, err := anon.Products(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Visible" {
		t.Errorf("storefront list = %+v", list)
	}

	adminList, err := admin.Products(ctx, "")
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminList) != 2 {
		t.Errorf("admin sees %d products, want 2", len(adminList))
	}
}

func TestPurchaseFlow(t *testing.T) {
	srv := newServer(t)
	admin := adminClient(t, srv)
	ctx := context.Background()

	cat, err := admin.CreateCategory(ctx, client.CategoryInput{Name: "Tea", Active: true})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	p1, err := admin.CreateProduct(ctx, client.ProductInput{
		Name: "Green Tea", PriceCents: 100, Stock: 10, Active: true, CategoryID: &cat.ID,
	})
	if err != nil {
		t.Fatalf("create p1: %v", err)
	}
	p2, err := admin.CreateProduct(ctx, client.ProductInput{
		Name: "Teapot", PriceCents: 50, Stock: 3, Active: true, CategoryID: &cat.ID,
	})
	if err != nil {
		t.Fatalf("create p2: %v", err)
	}

	shopper := shopperClient(t, srv, "buyer@example.com")

	if _, err := shopper.AddToCart(ctx, p1.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := shopper.AddToCart(ctx, p1.ID); err != nil {
		t.Fatalf("add again: %v", err)
	}
	cart, err := shopper.AddToCart(ctx, p2.ID)
	if err != nil {
		t.Fatalf("add p2: %v", err)
	}
	if cart.TotalCents != 250 || cart.Count != 3 {
		t.Fatalf("cart total=%d count=%d, want 250/3", cart.TotalCents, cart.Count)
	}

	order, err := shopper.Checkout(ctx, "5 High Street, Springfield", "card")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.Status != "pending_payment" || order.TotalCents != 250 {
		t.Fatalf("order = %+v", order)
	}

	cart, err = shopper.Cart(ctx)
	if err != nil {
		t.Fatalf("cart after checkout: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart not cleared: %+v", cart.Items)
	}

	// the other shopper cannot read this order
	stranger := shopperClient(t, srv, "stranger@example.com")
	_, err = stranger.Order(ctx, order.ID)
	wantStatus(t, err, http.StatusForbidden)

	for _, action := range []string{"confirm", "prepare", "deliver"} {
		if order, err = admin.TransitionOrder(ctx, order.ID, action, ""); err != nil {
			t.Fatalf("transition %s: %v", action, err)
		}
	}
	if order.Status != "delivered" {
		t.Errorf("status = %q, want delivered", order.Status)
	}

	// delivered orders can no longer be cancelled
	_, err = shopper.CancelOrder(ctx, order.ID)
	wantStatus(t, err, http.StatusConflict)

	events, err := admin.OrderEvents(ctx, order.ID)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 4 {
		t.Errorf("len(events) = %d, want 4", len(events))
	}

	page, err := admin.AdminOrders(ctx, 1, 20, "delivered")
	if err != nil {
		t.Fatalf("admin orders: %v", err)
	}
	if page.Total != 1 || len(page.Orders) != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestCheckoutOutOfStockConflict(t *testing.T) {
	srv := newServer(t)
	admin := adminClient(t, srv)
	ctx := context.Background()

	p, err := admin.CreateProduct(ctx, client.ProductInput{Name: "Rare", PriceCents: 100, Stock: 1, Active: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shopper := shopperClient(t, srv, "rare@example.com")
	if _, err := shopper.AddToCart(ctx, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := shopper.IncreaseCartItem(ctx, p.ID); err != nil {
		t.Fatalf("increase: %v", err)
	}

	_, err = shopper.Checkout(ctx, "5 High Street, Springfield", "card")
	wantStatus(t, err, http.StatusConflict)
}

func TestCategoryDeleteKeepsProducts(t *testing.T) {
	srv := newServer(t)
	admin := adminClient(t, srv)
	ctx := context.Background()

	cat, err := admin.CreateCategory(ctx, client.CategoryInput{Name: "Doomed", Active: true})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	p, err := admin.CreateProduct(ctx, client.ProductInput{
		Name: "Survivor", PriceCents: 100, Stock: 1, Active: true, CategoryID: &cat.ID,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := admin.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	got, err := admin.Product(ctx, p.ID)
	if err != nil {
		t.Fatalf("product should survive: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("category ref = %q, want cleared", *got.CategoryID)
	}
}

func TestReviewFlow(t *testing.T) {
	srv := newServer(t)
	admin := adminClient(t, srv)
	ctx := context.Background()

	p, err := admin.CreateProduct(ctx, client.ProductInput{Name: "Kettle", PriceCents: 100, Stock: 1, Active: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shopper := shopperClient(t, srv, "reviewer@example.com")
	if _, err := shopper.AddReview(ctx, p.ID, 5, "boils fast"); err != nil {
		t.Fatalf("add review: %v", err)
	}
	_, err = shopper.AddReview(ctx, p.ID, 9, "off the scale")
	wantStatus(t, err, http.StatusBadRequest)

	list, err := client.New(srv.URL).Reviews(ctx, p.ID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(list) != 1 || list[0].Rating != 5 {
		t.Errorf("reviews = %+v", list)
	}
}

func TestProductUpdateKeepsImagesOutOfBand(t *testing.T) {
	srv := newServer(t)
	admin := adminClient(t, srv)
	ctx := context.Background()

	p, err := admin.CreateProduct(ctx, client.ProductInput{Name: "Lamp", PriceCents: 100, Stock: 5, Active: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	upd, err := admin.UpdateProduct(ctx, p.ID, client.ProductUpdate{Name: "Lamp XL", PriceCents: 150, Stock: 5, Active: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Name != "Lamp XL" || upd.PriceCents != 150 {
		t.Errorf("updated product = %+v", upd)
	}

	// images ride along only through the dedicated image endpoints
	body := strings.NewReader(`{"name":"Lamp XL","price_cents":150,"stock":5,"active":true,"images":["https://cdn.example.com/lamp.png"]}`)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/admin/products/"+p.ID, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+admin.Token())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var envelope struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Fields["images"] == "" {
		t.Errorf("fields = %+v, want images entry", envelope.Fields)
	}

	got, err := admin.Product(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Images) != 0 {
		t.Errorf("images = %+v, want none", got.Images)
	}
}
