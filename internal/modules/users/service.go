package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aydamarket.com/api/internal/auth"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("email or password is wrong")
	ErrUnknownRole    = errors.New("unknown role")
)

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string // optional, defaults to "user"; only the admin panel sets it
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	if role != RoleAdmin && role != RoleUser {
		return User{}, ErrUnknownRole
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	now := time.Now()
	u := User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login checks credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, "", ErrBadCredentials
		}
		return User{}, "", err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return User{}, "", ErrBadCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Role, u.Username, u.Email)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

type UpdateInput struct {
	Username string
	Email    string
	Role     string
	Password string // optional, re-hash when set
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Role != "" && in.Role != RoleAdmin && in.Role != RoleUser {
		return User{}, ErrUnknownRole
	}

	email := normalizeEmail(in.Email)
	if email != "" && email != u.Email {
		if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != id {
			return User{}, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, err
		}
		u.Email = email
	}
	if name := strings.TrimSpace(in.Username); name != "" {
		u.Username = name
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete is a hard delete. Existing orders keep their user reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
