package products

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"aydamarket.com/api/internal/shared/slug"
)

var (
	ErrBadRating = errors.New("rating must be between 1 and 5")
	ErrBadPrice  = errors.New("price must not be negative")
	ErrBadStock  = errors.New("stock must not be negative")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context, onlyActive bool) ([]Product, error) {
	return s.repo.List(ctx, onlyActive)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string, onlyActive bool) ([]Product, error) {
	return s.repo.ListByCategory(ctx, categoryID, onlyActive)
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

type CreateInput struct {
	Name       string
	PriceCents int64
	Stock      int
	Active     bool
	CategoryID *string
	ImageURLs  []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	if in.PriceCents < 0 {
		return Product{}, ErrBadPrice
	}
	if in.Stock < 0 {
		return Product{}, ErrBadStock
	}

	now := time.Now()
	p := Product{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Slug:       slug.FromName(in.Name, "product"),
		PriceCents: in.PriceCents,
		Stock:      in.Stock,
		Active:     in.Active,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i, url := range in.ImageURLs {
		p.Images = append(p.Images, Image{
			ID:         uuid.NewString(),
			ProductID:  p.ID,
			StorageKey: url,
			URL:        url,
			Position:   i,
			CreatedAt:  now,
		})
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Name       string
	PriceCents int64
	Stock      int
	Active     bool
	CategoryID *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Product, error) {
	if in.PriceCents < 0 {
		return Product{}, ErrBadPrice
	}
	if in.Stock < 0 {
		return Product{}, ErrBadStock
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	p.Name = in.Name
	p.Slug = slug.FromName(in.Name, "product")
	p.PriceCents = in.PriceCents
	p.Stock = in.Stock
	p.Active = in.Active
	p.CategoryID = in.CategoryID
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddImage(ctx context.Context, productID, storageKey, url string) (Image, error) {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return Image{}, err
	}
	im := Image{
		ID:         uuid.NewString(),
		ProductID:  p.ID,
		StorageKey: storageKey,
		URL:        url,
		Position:   len(p.Images),
		CreatedAt:  time.Now(),
	}
	if err := s.repo.AddImage(ctx, &im); err != nil {
		return Image{}, err
	}
	return im, nil
}

func (s *Service) GetImage(ctx context.Context, productID, imageID string) (Image, error) {
	return s.repo.GetImage(ctx, productID, imageID)
}

func (s *Service) DeleteImage(ctx context.Context, productID, imageID string) error {
	return s.repo.DeleteImage(ctx, productID, imageID)
}

func (s *Service) AddReview(ctx context.Context, productID, userID string, rating int, body string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrBadRating
	}
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return Review{}, err
	}
	rv := Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddReview(ctx, &rv); err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (s *Service) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, productID)
}
