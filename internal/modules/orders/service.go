package orders

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/modules/users"
)

type Service struct {
	repo   Repository
	carts  cart.Repository
	logger *slog.Logger
}

func NewService(repo Repository, carts cart.Repository) *Service {
	return &Service{repo: repo, carts: carts, logger: slog.Default()}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

type CheckoutInput struct {
	Address       string
	PaymentMethod string
}

// Checkout snapshots the user's cart into a new pending-payment order and
// clears the cart. The total is computed here from the item snapshots; any
// total the client sends is ignored.
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (Order, error) {
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return Order{}, err
	}
	if len(c.Items) == 0 {
		return Order{}, ErrCartEmpty
	}

	now := time.Now()
	o := Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Status:        StatusPendingPayment,
		Address:       strings.TrimSpace(in.Address),
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	lines := make([]StockLine, 0, len(c.Items))
	for _, it := range c.Items {
		o.Items = append(o.Items, Item{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
			CreatedAt:  now,
		})
		o.TotalCents += it.LineTotalCents()
		lines = append(lines, StockLine{ProductID: it.ProductID, Qty: it.Quantity})
	}

	if err := s.repo.Place(ctx, &o, lines); err != nil {
		return Order{}, err
	}

	// Once Place committed, the order exists and stock is deducted; the
	// cart clear and the audit event must not turn that into a checkout
	// failure for the caller.
	if err := s.carts.Clear(ctx, c.ID); err != nil {
		s.logger.Error("clear cart after checkout", "order_id", o.ID, "cart_id", c.ID, "error", err)
	}

	ev := Event{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		ActorUserID: userID,
		Action:      "create",
		ToStatus:    StatusPendingPayment,
		CreatedAt:   now,
	}
	if err := s.repo.AppendEvent(ctx, &ev); err != nil {
		s.logger.Error("append checkout event", "order_id", o.ID, "error", err)
	}

	return o, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, p ListParams) ([]Order, int64, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.Get(ctx, id)
}

// GetForUser loads an order and enforces ownership for non-admin callers.
func (s *Service) GetForUser(ctx context.Context, id, userID, role string) (Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if role != users.RoleAdmin && o.UserID != userID {
		return Order{}, ErrNotOwner
	}
	return o, nil
}

func (s *Service) Events(ctx context.Context, orderID string) ([]Event, error) {
	if _, err := s.repo.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, orderID)
}

type TransitionInput struct {
	OrderID   string
	ActorID   string
	ActorRole string
	Action    string // confirm|prepare|deliver|cancel
	Note      string
}

// Transition applies one status change. Admins may run any action; customers
// may only cancel their own order.
func (s *Service) Transition(ctx context.Context, in TransitionInput) (Order, error) {
	if in.OrderID == "" || in.ActorID == "" || in.Action == "" {
		return Order{}, ErrNotActionable
	}

	o, err := s.repo.Get(ctx, in.OrderID)
	if err != nil {
		return Order{}, err
	}

	if in.ActorRole != users.RoleAdmin {
		if o.UserID != in.ActorID {
			return Order{}, ErrNotOwner
		}
		if in.Action != ActionCancel {
			return Order{}, ErrNotActionable
		}
	}

	from := o.Status
	to, err := nextStatus(from, in.Action)
	if err != nil {
		return Order{}, err
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, from, to); err != nil {
		return Order{}, err
	}

	var notePtr *string
	if n := strings.TrimSpace(in.Note); n != "" {
		notePtr = &n
	}
	ev := Event{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		ActorUserID: in.ActorID,
		Action:      in.Action,
		FromStatus:  from,
		ToStatus:    to,
		Note:        notePtr,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.AppendEvent(ctx, &ev); err != nil {
		return Order{}, err
	}

	o.Status = to
	o.UpdatedAt = ev.CreatedAt
	return o, nil
}
