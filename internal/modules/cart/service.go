package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"aydamarket.com/api/internal/modules/products"
)

var (
	ErrProductUnavailable = errors.New("product unavailable")
	ErrBadQuantity        = errors.New("quantity must be at least 1")
)

type Service struct {
	repo     Repository
	products products.Repository
}

func NewService(repo Repository, prods products.Repository) *Service {
	return &Service{repo: repo, products: prods}
}

// Summary is the cart as returned to clients, totals included.
type Summary struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Items      []Item `json:"items"`
	Count      int    `json:"count"`
	TotalCents int64  `json:"total_cents"`
}

func Summarize(c Cart) Summary {
	s := Summary{ID: c.ID, UserID: c.UserID, Items: c.Items}
	if s.Items == nil {
		s.Items = []Item{}
	}
	for _, it := range c.Items {
		s.Count += it.Quantity
		s.TotalCents += it.LineTotalCents()
	}
	return s
}

func (s *Service) Get(ctx context.Context, userID string) (Summary, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(c), nil
}

// Add puts one unit of the product into the cart. If the product is already
// there, the existing line's quantity goes up by one instead of a duplicate
// line appearing.
func (s *Service) Add(ctx context.Context, userID, productID string) (Summary, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	if !p.Active {
		return Summary{}, ErrProductUnavailable
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	if existing, ok := findItem(c, productID); ok {
		if err := s.repo.UpdateItemQty(ctx, c.ID, productID, existing.Quantity+1); err != nil {
			return Summary{}, err
		}
		return s.Get(ctx, userID)
	}

	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0].URL
	}
	it := Item{
		ID:         uuid.NewString(),
		CartID:     c.ID,
		ProductID:  p.ID,
		Name:       p.Name,
		ImageURL:   image,
		PriceCents: p.PriceCents,
		Quantity:   1,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.AddItem(ctx, &it); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Increase(ctx context.Context, userID, productID string) (Summary, error) {
	return s.adjust(ctx, userID, productID, +1)
}

// Decrease lowers the quantity by one but never below 1; at quantity 1 it is
// a no-op. Removing the line is an explicit action.
func (s *Service) Decrease(ctx context.Context, userID, productID string) (Summary, error) {
	return s.adjust(ctx, userID, productID, -1)
}

// SetQuantity pins the line to an absolute quantity. Quantities below 1 are
// rejected; removal stays a separate action.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, qty int) (Summary, error) {
	if qty < 1 {
		return Summary{}, ErrBadQuantity
	}
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	if _, ok := findItem(c, productID); !ok {
		return Summarize(c), nil
	}
	if err := s.repo.UpdateItemQty(ctx, c.ID, productID, qty); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) adjust(ctx context.Context, userID, productID string, delta int) (Summary, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	it, ok := findItem(c, productID)
	if !ok {
		return Summarize(c), nil
	}
	next := it.Quantity + delta
	if next < 1 {
		return Summarize(c), nil
	}
	if err := s.repo.UpdateItemQty(ctx, c.ID, productID, next); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (Summary, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	if err := s.repo.RemoveItem(ctx, c.ID, productID); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) (Summary, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	if err := s.repo.Clear(ctx, c.ID); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}

func findItem(c Cart, productID string) (Item, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}
