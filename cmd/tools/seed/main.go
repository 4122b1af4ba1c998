// Seeds a demo catalog plus an admin account, against whichever store
// STORE_DRIVER selects. Safe to run against an empty database only.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"aydamarket.com/api/internal/auth"
	"aydamarket.com/api/internal/config"
	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	st, err := store.FromConfig(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	ctx := context.Background()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := users.NewService(st.Users, tokens)
	categorySvc := categories.NewService(st.Categories)
	productSvc := products.NewService(st.Products)

	admin, err := userSvc.Register(ctx, users.RegisterInput{
		Username: "admin",
		Email:    "admin@aydamarket.com",
		Password: "admin12345",
		Role:     users.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("admin user %s created", admin.Email)

	type seedProduct struct {
		name       string
		priceCents int64
		stock      int
	}
	catalog := map[string][]seedProduct{
		"Electronics": {
			{"Wireless Headphones", 12900, 40},
			{"Mechanical Keyboard", 8900, 25},
			{"USB-C Charger 65W", 3500, 120},
		},
		"Home & Kitchen": {
			{"Pour-Over Coffee Kit", 4200, 30},
			{"Cast Iron Skillet 28cm", 5900, 18},
		},
		"Books": {
			{"The Go Programming Language", 3600, 50},
		},
	}

	for catName, items := range catalog {
		cat, err := categorySvc.Create(ctx, categories.Input{Name: catName, Active: true})
		if err != nil {
			log.Fatalf("seed category %q: %v", catName, err)
		}
		for _, sp := range items {
			catID := cat.ID
			if _, err := productSvc.Create(ctx, products.CreateInput{
				Name:       sp.name,
				PriceCents: sp.priceCents,
				Stock:      sp.stock,
				Active:     true,
				CategoryID: &catID,
			}); err != nil {
				log.Fatalf("seed product %q: %v", sp.name, err)
			}
		}
		log.Printf("category %q seeded with %d products", catName, len(items))
	}

	log.Printf("done (store=%s)", st.Driver)
}
