package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/http/validation"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/shared/apperr"
)

type ProductsHandler struct {
	Products *products.Service
}

func NewProductsHandler(svc *products.Service) *ProductsHandler {
	return &ProductsHandler{Products: svc}
}

// List handles GET /api/products, optionally filtered by ?category=. The
// storefront sees active products only; admins get the full catalog.
func (h *ProductsHandler) List(c *gin.Context) {
	onlyActive := true
	if u, ok := middleware.CurrentUser(c); ok && u.Role == users.RoleAdmin {
		onlyActive = false
	}

	var (
		items []products.Product
		err   error
	)
	if categoryID := c.Query("category"); categoryID != "" {
		items, err = h.Products.ListByCategory(c.Request.Context(), categoryID, onlyActive)
	} else {
		items, err = h.Products.List(c.Request.Context(), onlyActive)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type productInput struct {
	Name       string   `json:"name" binding:"required,min=2,max=255"`
	PriceCents int64    `json:"price_cents" binding:"gte=0"`
	Stock      int      `json:"stock" binding:"gte=0"`
	Active     bool     `json:"active"`
	CategoryID *string  `json:"category_id"`
	Images     []string `json:"images" binding:"omitempty,dive,url"`
}

// Create handles POST /api/admin/products.
func (h *ProductsHandler) Create(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	p, err := h.Products.Create(c.Request.Context(), products.CreateInput{
		Name:       in.Name,
		PriceCents: in.PriceCents,
		Stock:      in.Stock,
		Active:     in.Active,
		CategoryID: in.CategoryID,
		ImageURLs:  in.Images,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /api/admin/products/:id. Images are managed through
// the dedicated image endpoints, so a payload that carries them is
// rejected instead of silently ignored.
func (h *ProductsHandler) Update(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}
	if in.Images != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", map[string]string{
			"images": "Use the image upload endpoints to change product images.",
		}))
		return
	}

	p, err := h.Products.Update(c.Request.Context(), c.Param("id"), products.UpdateInput{
		Name:       in.Name,
		PriceCents: in.PriceCents,
		Stock:      in.Stock,
		Active:     in.Active,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/admin/products/:id. Hard delete, images and reviews
// go with it.
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
