package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/http/validation"
	"aydamarket.com/api/internal/shared/apperr"
)

// ListReviews handles GET /api/products/:id/reviews.
func (h *ProductsHandler) ListReviews(c *gin.Context) {
	items, err := h.Products.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type reviewInput struct {
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
	Body   string `json:"body" binding:"omitempty,max=2000"`
}

// AddReview handles POST /api/products/:id/reviews.
func (h *ProductsHandler) AddReview(c *gin.Context) {
	var in reviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	rv, err := h.Products.AddReview(c.Request.Context(), c.Param("id"), u.ID, in.Rating, in.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}
