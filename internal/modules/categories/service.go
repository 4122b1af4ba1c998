package categories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"aydamarket.com/api/internal/shared/slug"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context, onlyActive bool) ([]Category, error) {
	return s.repo.List(ctx, onlyActive)
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	return s.repo.Get(ctx, id)
}

type Input struct {
	Name        string
	Description string
	Active      bool
}

func (s *Service) Create(ctx context.Context, in Input) (Category, error) {
	now := time.Now()
	c := Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug.FromName(in.Name, "category"),
		Description: in.Description,
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Category, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Slug = slug.FromName(in.Name, "category")
	c.Description = in.Description
	c.Active = in.Active
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
