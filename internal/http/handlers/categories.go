package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/http/validation"
	"aydamarket.com/api/internal/modules/categories"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/shared/apperr"
)

type CategoriesHandler struct {
	Categories *categories.Service
}

func NewCategoriesHandler(svc *categories.Service) *CategoriesHandler {
	return &CategoriesHandler{Categories: svc}
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *gin.Context) {
	onlyActive := true
	if u, ok := middleware.CurrentUser(c); ok && u.Role == users.RoleAdmin {
		onlyActive = false
	}
	items, err := h.Categories.List(c.Request.Context(), onlyActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/categories/:id, products included.
func (h *CategoriesHandler) Get(c *gin.Context) {
	cat, err := h.Categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

type categoryInput struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Active      bool   `json:"active"`
}

// Create handles POST /api/admin/categories.
func (h *CategoriesHandler) Create(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	cat, err := h.Categories.Create(c.Request.Context(), categories.Input{
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// Update handles PUT /api/admin/categories/:id.
func (h *CategoriesHandler) Update(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	cat, err := h.Categories.Update(c.Request.Context(), c.Param("id"), categories.Input{
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /api/admin/categories/:id. Products in the category are
// detached, not deleted.
func (h *CategoriesHandler) Delete(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
