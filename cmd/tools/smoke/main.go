// Runs an end-to-end purchase flow against a live API: register, browse,
// fill the cart, check out, then walk the order through the admin console.
// Needs a seeded server (cmd/tools/seed) and the seed admin credentials.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"aydamarket.com/api/pkg/client"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "API base URL")
	adminEmail := flag.String("admin-email", "admin@aydamarket.com", "admin login")
	adminPassword := flag.String("admin-password", "admin12345", "admin password")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shopper := client.New(*baseURL)

	email := "smoke+" + time.Now().Format("20060102150405") + "@example.com"
	if _, err := shopper.Register(ctx, client.RegisterInput{
		Username: "smoke",
		Email:    email,
		Password: "smoke12345",
	}); err != nil {
		log.Fatalf("register: %v", err)
	}
	if _, err := shopper.Login(ctx, email, "smoke12345"); err != nil {
		log.Fatalf("login: %v", err)
	}

	prods, err := shopper.Products(ctx, "")
	if err != nil {
		log.Fatalf("products: %v", err)
	}
	if len(prods) < 2 {
		log.Fatalf("need at least 2 seeded products, got %d", len(prods))
	}

	if _, err := shopper.AddToCart(ctx, prods[0].ID); err != nil {
		log.Fatalf("add to cart: %v", err)
	}
	if _, err := shopper.AddToCart(ctx, prods[0].ID); err != nil {
		log.Fatalf("add to cart again: %v", err)
	}
	cart, err := shopper.AddToCart(ctx, prods[1].ID)
	if err != nil {
		log.Fatalf("add second product: %v", err)
	}
	want := 2*prods[0].PriceCents + prods[1].PriceCents
	if cart.TotalCents != want {
		log.Fatalf("cart total = %d, want %d", cart.TotalCents, want)
	}

	order, err := shopper.Checkout(ctx, "1 Smoke Test Lane, Springfield", "card")
	if err != nil {
		log.Fatalf("checkout: %v", err)
	}
	if order.Status != "pending_payment" {
		log.Fatalf("new order status = %q, want pending_payment", order.Status)
	}
	if cart, err = shopper.Cart(ctx); err != nil || len(cart.Items) != 0 {
		log.Fatalf("cart not cleared after checkout (err=%v, items=%d)", err, len(cart.Items))
	}

	admin := client.New(*baseURL)
	if _, err := admin.Login(ctx, *adminEmail, *adminPassword); err != nil {
		log.Fatalf("admin login: %v", err)
	}
	for _, action := range []string{"confirm", "prepare", "deliver"} {
		if order, err = admin.TransitionOrder(ctx, order.ID, action, ""); err != nil {
			log.Fatalf("transition %s: %v", action, err)
		}
	}
	if order.Status != "delivered" {
		log.Fatalf("final status = %q, want delivered", order.Status)
	}

	events, err := admin.OrderEvents(ctx, order.ID)
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	// create + three transitions
	if len(events) != 4 {
		log.Fatalf("event count = %d, want 4", len(events))
	}

	log.Printf("smoke passed: order %s delivered, total %d cents", order.ID, order.TotalCents)
}
