package client

import "time"

// The types below mirror the server's JSON responses.

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Session struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type ProductImage struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	PriceCents int64          `json:"price_cents"`
	Stock      int            `json:"stock"`
	Sold       int            `json:"sold"`
	Active     bool           `json:"active"`
	CategoryID *string        `json:"category_id"`
	Images     []ProductImage `json:"images"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Products    []Product `json:"products,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CartItem struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	PriceCents int64     `json:"price_cents"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}

type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Items      []CartItem `json:"items"`
	Count      int        `json:"count"`
	TotalCents int64      `json:"total_cents"`
}

type OrderItem struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Status        string      `json:"status"`
	TotalCents    int64       `json:"total_cents"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderEvent struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ActorUserID string    `json:"actor_user_id"`
	Action      string    `json:"action"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderPage struct {
	Orders   []Order `json:"orders"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}
