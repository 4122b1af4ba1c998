package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/auth"
	"aydamarket.com/api/internal/config"
	"aydamarket.com/api/internal/http/handlers"
	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/orders"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/storage"
	"aydamarket.com/api/internal/store"
)

// NewRouter wires the middleware chain, services and the full route table.
func NewRouter(logger *slog.Logger, cfg config.Config, st *store.Store, blobs storage.Storage) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = 10 << 20

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(corsMiddleware(cfg))
	r.Use(middleware.RateLimit(20, 40))
	r.Use(middleware.ErrorHandler(logger))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	r.Use(middleware.BearerAuth(tokens))

	userSvc := users.NewService(st.Users, tokens)
	productSvc := products.NewService(st.Products)
	categorySvc := categories.NewService(st.Categories)
	cartSvc := cart.NewService(st.Carts, st.Products)
	orderSvc := orders.NewService(st.Orders, st.Carts)
	orderSvc.SetLogger(logger)

	feed := handlers.NewHub(logger)

	authH := handlers.NewAuthHandler(userSvc)
	usersH := handlers.NewUsersHandler(userSvc)
	productsH := handlers.NewProductsHandler(productSvc)
	imagesH := handlers.NewProductImagesHandler(productSvc, blobs)
	categoriesH := handlers.NewCategoriesHandler(categorySvc)
	cartH := handlers.NewCartHandler(cartSvc)
	ordersH := handlers.NewOrdersHandler(orderSvc, feed)

	r.GET("/healthz", handlers.Health(st.Driver))

	api := r.Group("/api")

	// Public catalog + auth.
	api.POST("/users/register", authH.Register)
	api.POST("/users/login", authH.Login)
	api.GET("/products", productsH.List)
	api.GET("/products/:id", productsH.Get)
	api.GET("/products/:id/reviews", productsH.ListReviews)
	api.GET("/categories", categoriesH.List)
	api.GET("/categories/:id", categoriesH.Get)

	// Signed-in customers.
	authed := api.Group("")
	authed.Use(middleware.RequireAuth())
	{
		authed.GET("/users/me", authH.Me)
		authed.POST("/products/:id/reviews", productsH.AddReview)

		authed.GET("/cart", cartH.Get)
		authed.POST("/cart/items", cartH.Add)
		authed.PUT("/cart/items/:productID", cartH.UpdateQty)
		authed.DELETE("/cart/items/:productID", cartH.Remove)
		authed.DELETE("/cart", cartH.Clear)
		authed.POST("/cart/checkout", ordersH.Checkout)

		authed.GET("/orders", ordersH.ListMine)
		authed.GET("/orders/:id", ordersH.Get)
		authed.PUT("/orders/:id/cancel", ordersH.Cancel)
	}

	// Admin console.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.GET("/users", usersH.List)
		admin.PUT("/users/:id", usersH.Update)
		admin.DELETE("/users/:id", usersH.Delete)

		admin.POST("/products", productsH.Create)
		admin.PUT("/products/:id", productsH.Update)
		admin.DELETE("/products/:id", productsH.Delete)
		admin.GET("/products/export", productsH.Export)
		admin.POST("/products/:id/images", imagesH.Upload)
		admin.DELETE("/products/:id/images/:imageID", imagesH.Delete)

		admin.POST("/categories", categoriesH.Create)
		admin.PUT("/categories/:id", categoriesH.Update)
		admin.DELETE("/categories/:id", categoriesH.Delete)

		admin.GET("/orders", ordersH.ListAll)
		admin.GET("/orders/feed", feed.Serve)
		admin.PUT("/orders/:id/status", ordersH.Transition)
		admin.GET("/orders/:id/events", ordersH.Events)
	}

	// Locally stored product images are served straight from disk; S3 keys
	// carry absolute URLs instead.
	if local, ok := blobs.(*storage.Local); ok {
		r.Static("/uploads", local.BaseDir)
	}

	return r
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) > 0 {
		c.AllowOrigins = cfg.CORSOrigins
	} else {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	return cors.New(c)
}
