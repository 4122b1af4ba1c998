package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/http/validation"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/shared/apperr"
)

// UsersHandler is the admin user management surface.
type UsersHandler struct {
	Users *users.Service
}

func NewUsersHandler(svc *users.Service) *UsersHandler {
	return &UsersHandler{Users: svc}
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(c *gin.Context) {
	items, err := h.Users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type userUpdateInput struct {
	Username string `json:"username" binding:"omitempty,min=2,max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
}

// Update handles PUT /api/admin/users/:id.
func (h *UsersHandler) Update(c *gin.Context) {
	var in userUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	u, err := h.Users.Update(c.Request.Context(), c.Param("id"), users.UpdateInput{
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
		Password: in.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /api/admin/users/:id. Hard delete.
func (h *UsersHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
