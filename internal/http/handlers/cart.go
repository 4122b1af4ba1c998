package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/http/validation"
	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/shared/apperr"
)

// CartHandler operates on the signed-in user's cart.
type CartHandler struct {
	Cart *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{Cart: svc}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	sum, err := h.Cart.Get(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type cartAddInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Add handles POST /api/cart/items: one unit of the product goes in, or an
// existing line's quantity goes up by one.
func (h *CartHandler) Add(c *gin.Context) {
	var in cartAddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	sum, err := h.Cart.Add(c.Request.Context(), u.ID, in.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type cartQtyInput struct {
	Op       string `json:"op" binding:"required,oneof=increase decrease set"`
	Quantity int    `json:"quantity" binding:"omitempty,gte=1"`
}

// UpdateQty handles PUT /api/cart/items/:productID with an increase, decrease
// or absolute set op. Decreasing at quantity 1 leaves the line unchanged.
func (h *CartHandler) UpdateQty(c *gin.Context) {
	var in cartQtyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	var (
		sum cart.Summary
		err error
	)
	switch in.Op {
	case "increase":
		sum, err = h.Cart.Increase(c.Request.Context(), u.ID, c.Param("productID"))
	case "decrease":
		sum, err = h.Cart.Decrease(c.Request.Context(), u.ID, c.Param("productID"))
	default:
		sum, err = h.Cart.SetQuantity(c.Request.Context(), u.ID, c.Param("productID"), in.Quantity)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Remove handles DELETE /api/cart/items/:productID.
func (h *CartHandler) Remove(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	sum, err := h.Cart.Remove(c.Request.Context(), u.ID, c.Param("productID"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	sum, err := h.Cart.Clear(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
