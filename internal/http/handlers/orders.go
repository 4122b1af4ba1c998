package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/http/validation"
	"aydamarket.com/api/internal/modules/orders"
	"aydamarket.com/api/internal/shared/apperr"
)

// OrdersHandler covers checkout, the customer's order history and the admin
// order console.
type OrdersHandler struct {
	Orders *orders.Service
	Feed   *Hub
}

func NewOrdersHandler(svc *orders.Service, feed *Hub) *OrdersHandler {
	return &OrdersHandler{Orders: svc, Feed: feed}
}

type checkoutInput struct {
	Address       string `json:"address" binding:"required,min=8,max=512"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card cod bank_transfer"`
}

// Checkout handles POST /api/cart/checkout.
func (h *OrdersHandler) Checkout(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	o, err := h.Orders.Checkout(c.Request.Context(), u.ID, orders.CheckoutInput{
		Address:       in.Address,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.Feed.Broadcast(FeedMessage{Type: "order_created", Order: o})
	c.JSON(http.StatusCreated, o)
}

// ListMine handles GET /api/orders.
func (h *OrdersHandler) ListMine(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	list, err := h.Orders.ListForUser(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles GET /api/orders/:id. Customers only see their own orders.
func (h *OrdersHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	o, err := h.Orders.GetForUser(c.Request.Context(), c.Param("id"), u.ID, u.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Cancel handles PUT /api/orders/:id/cancel for the order's owner.
func (h *OrdersHandler) Cancel(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	o, err := h.Orders.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:   c.Param("id"),
		ActorID:   u.ID,
		ActorRole: u.Role,
		Action:    orders.ActionCancel,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.Feed.Broadcast(FeedMessage{Type: "order_updated", Order: o})
	c.JSON(http.StatusOK, o)
}

// ListAll handles GET /api/admin/orders with paging and an optional status
// filter.
func (h *OrdersHandler) ListAll(c *gin.Context) {
	p := orders.ListParams{
		Page:     atoiDefault(c.Query("page"), 1),
		PageSize: atoiDefault(c.Query("page_size"), 20),
		Status:   c.Query("status"),
	}
	list, total, err := h.Orders.ListAll(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":    list,
		"total":     total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

type transitionInput struct {
	Action string `json:"action" binding:"required,oneof=confirm prepare deliver cancel"`
	Note   string `json:"note" binding:"max=512"`
}

// Transition handles PUT /api/admin/orders/:id/status.
func (h *OrdersHandler) Transition(c *gin.Context) {
	var in transitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	o, err := h.Orders.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:   c.Param("id"),
		ActorID:   u.ID,
		ActorRole: u.Role,
		Action:    in.Action,
		Note:      in.Note,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.Feed.Broadcast(FeedMessage{Type: "order_updated", Order: o})
	c.JSON(http.StatusOK, o)
}

// Events handles GET /api/admin/orders/:id/events.
func (h *OrdersHandler) Events(c *gin.Context) {
	evs, err := h.Orders.Events(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, evs)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
