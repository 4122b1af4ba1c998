package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/http/validation"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/shared/apperr"
)

// AuthHandler covers register, login and the current-user lookup.
type AuthHandler struct {
	Users *users.Service
}

func NewAuthHandler(svc *users.Service) *AuthHandler {
	return &AuthHandler{Users: svc}
}

type registerInput struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// Register handles POST /api/users/register. Only an admin may set a role;
// everyone else registers as a plain user.
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	role := ""
	if u, ok := middleware.CurrentUser(c); ok && u.Role == users.RoleAdmin {
		role = in.Role
	}

	u, err := h.Users.Register(c.Request.Context(), users.RegisterInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/users/login and returns the bearer token together
// with the fields the storefront keeps in its session.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	u, token, err := h.Users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	})
}

// Me handles GET /api/users/me.
func (h *AuthHandler) Me(c *gin.Context) {
	cu, _ := middleware.CurrentUser(c)
	u, err := h.Users.Get(c.Request.Context(), cu.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
