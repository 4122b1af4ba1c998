package orders

import (
	"context"
	"time"
)

type Order struct {
	ID            string `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID        string `gorm:"type:char(36);not null;index:ix_orders_user" json:"user_id"`
	Status        Status `gorm:"size:32;not null" json:"status"`
	TotalCents    int64  `gorm:"not null" json:"total_cents"`
	Address       string `gorm:"size:512;not null" json:"address"`
	PaymentMethod string `gorm:"size:32;not null" json:"payment_method"`

	Items []Item `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// Item is a line snapshot taken at checkout; later catalog changes never
// touch it.
type Item struct {
	ID         string    `gorm:"primaryKey;type:char(36)" json:"id"`
	OrderID    string    `gorm:"type:char(36);not null;index:ix_order_items_order" json:"-"`
	ProductID  string    `gorm:"type:char(36);not null" json:"product_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"-"`
}

func (Item) TableName() string { return "order_items" }

// Event is an audit row appended on creation and on every status change.
type Event struct {
	ID          string    `gorm:"primaryKey;type:char(36)" json:"id"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_events_order" json:"order_id"`
	ActorUserID string    `gorm:"type:char(36);not null" json:"actor_user_id"`
	Action      string    `gorm:"size:32;not null" json:"action"`
	FromStatus  Status    `gorm:"size:32" json:"from_status"`
	ToStatus    Status    `gorm:"size:32;not null" json:"to_status"`
	Note        *string   `gorm:"size:512" json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Event) TableName() string { return "order_events" }

// StockLine is one product deduction applied atomically with order insertion.
type StockLine struct {
	ProductID string
	Qty       int
}

type ListParams struct {
	Page     int
	PageSize int
	Status   string // optional filter
}

type Repository interface {
	// Place inserts the order with its items, deducts stock and bumps the
	// per-product sold counters, all atomically. Returns *OutOfStockError
	// when any line cannot be satisfied.
	Place(ctx context.Context, o *Order, lines []StockLine) error

	ListByUser(ctx context.Context, userID string) ([]Order, error)
	List(ctx context.Context, p ListParams) ([]Order, int64, error)
	Get(ctx context.Context, id string) (Order, error)

	// UpdateStatus moves id from one status to another; the from guard makes
	// concurrent transitions lose cleanly.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	AppendEvent(ctx context.Context, ev *Event) error
	ListEvents(ctx context.Context, orderID string) ([]Event, error)
}
