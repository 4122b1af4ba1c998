package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/api/users/register", in, &u)
	return u, err
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &s); err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &u)
	return u, err
}

// Products lists the catalog; pass a category ID to filter, or "" for all.
func (c *Client) Products(ctx context.Context, categoryID string) ([]Product, error) {
	path := "/api/products"
	if categoryID != "" {
		path += "?category=" + url.QueryEscape(categoryID)
	}
	var list []Product
	err := c.do(ctx, http.MethodGet, path, nil, &list)
	return list, err
}

func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var p Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &p)
	return p, err
}

func (c *Client) Reviews(ctx context.Context, productID string) ([]Review, error) {
	var list []Review
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID)+"/reviews", nil, &list)
	return list, err
}

func (c *Client) AddReview(ctx context.Context, productID string, rating int, body string) (Review, error) {
	var rv Review
	in := map[string]any{"rating": rating, "body": body}
	err := c.do(ctx, http.MethodPost, "/api/products/"+url.PathEscape(productID)+"/reviews", in, &rv)
	return rv, err
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var list []Category
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, &list)
	return list, err
}

func (c *Client) Category(ctx context.Context, id string) (Category, error) {
	var cat Category
	err := c.do(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, &cat)
	return cat, err
}

func (c *Client) Cart(ctx context.Context) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodGet, "/api/cart", nil, &cart)
	return cart, err
}

func (c *Client) AddToCart(ctx context.Context, productID string) (Cart, error) {
	var cart Cart
	in := map[string]string{"product_id": productID}
	err := c.do(ctx, http.MethodPost, "/api/cart/items", in, &cart)
	return cart, err
}

func (c *Client) IncreaseCartItem(ctx context.Context, productID string) (Cart, error) {
	return c.adjustCartItem(ctx, productID, "increase")
}

func (c *Client) DecreaseCartItem(ctx context.Context, productID string) (Cart, error) {
	return c.adjustCartItem(ctx, productID, "decrease")
}

func (c *Client) adjustCartItem(ctx context.Context, productID, op string) (Cart, error) {
	var cart Cart
	in := map[string]string{"op": op}
	err := c.do(ctx, http.MethodPut, "/api/cart/items/"+url.PathEscape(productID), in, &cart)
	return cart, err
}

// SetCartItemQuantity pins a cart line to an absolute quantity (min 1).
func (c *Client) SetCartItemQuantity(ctx context.Context, productID string, qty int) (Cart, error) {
	var cart Cart
	in := map[string]any{"op": "set", "quantity": qty}
	err := c.do(ctx, http.MethodPut, "/api/cart/items/"+url.PathEscape(productID), in, &cart)
	return cart, err
}

func (c *Client) RemoveCartItem(ctx context.Context, productID string) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodDelete, "/api/cart/items/"+url.PathEscape(productID), nil, &cart)
	return cart, err
}

func (c *Client) ClearCart(ctx context.Context) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodDelete, "/api/cart", nil, &cart)
	return cart, err
}

func (c *Client) Checkout(ctx context.Context, address, paymentMethod string) (Order, error) {
	var o Order
	in := map[string]string{"address": address, "payment_method": paymentMethod}
	err := c.do(ctx, http.MethodPost, "/api/cart/checkout", in, &o)
	return o, err
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var list []Order
	err := c.do(ctx, http.MethodGet, "/api/orders", nil, &list)
	return list, err
}

func (c *Client) Order(ctx context.Context, id string) (Order, error) {
	var o Order
	err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &o)
	return o, err
}

func (c *Client) CancelOrder(ctx context.Context, id string) (Order, error) {
	var o Order
	err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/cancel", nil, &o)
	return o, err
}

type ProductInput struct {
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Stock      int      `json:"stock"`
	Active     bool     `json:"active"`
	CategoryID *string  `json:"category_id,omitempty"`
	Images     []string `json:"images,omitempty"`
}

// ProductUpdate carries the mutable product fields. Images are not among
// them; the server rejects update payloads that include images, which are
// changed through the image endpoints instead.
type ProductUpdate struct {
	Name       string  `json:"name"`
	PriceCents int64   `json:"price_cents"`
	Stock      int     `json:"stock"`
	Active     bool    `json:"active"`
	CategoryID *string `json:"category_id,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	var p Product
	err := c.do(ctx, http.MethodPost, "/api/admin/products", in, &p)
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductUpdate) (Product, error) {
	var p Product
	err := c.do(ctx, http.MethodPut, "/api/admin/products/"+url.PathEscape(id), in, &p)
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/products/"+url.PathEscape(id), nil, nil)
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (Category, error) {
	var cat Category
	err := c.do(ctx, http.MethodPost, "/api/admin/categories", in, &cat)
	return cat, err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) (Category, error) {
	var cat Category
	err := c.do(ctx, http.MethodPut, "/api/admin/categories/"+url.PathEscape(id), in, &cat)
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/categories/"+url.PathEscape(id), nil, nil)
}

// AdminOrders pages through every customer's orders; status filters when
// non-empty.
func (c *Client) AdminOrders(ctx context.Context, page, pageSize int, status string) (OrderPage, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("page_size", fmt.Sprint(pageSize))
	if status != "" {
		q.Set("status", status)
	}
	var p OrderPage
	err := c.do(ctx, http.MethodGet, "/api/admin/orders?"+q.Encode(), nil, &p)
	return p, err
}

func (c *Client) TransitionOrder(ctx context.Context, id, action, note string) (Order, error) {
	var o Order
	in := map[string]string{"action": action, "note": note}
	err := c.do(ctx, http.MethodPut, "/api/admin/orders/"+url.PathEscape(id)+"/status", in, &o)
	return o, err
}

func (c *Client) OrderEvents(ctx context.Context, id string) ([]OrderEvent, error) {
	var evs []OrderEvent
	err := c.do(ctx, http.MethodGet, "/api/admin/orders/"+url.PathEscape(id)+"/events", nil, &evs)
	return evs, err
}

func (c *Client) AdminUsers(ctx context.Context) ([]User, error) {
	var list []User
	err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &list)
	return list, err
}
