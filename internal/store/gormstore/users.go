package gormstore

import (
	"context"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/users"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) List(ctx context.Context) ([]users.User, error) {
	var items []users.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *UserRepo) Get(ctx context.Context, id string) (users.User, error) {
	var u users.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	var u users.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return u, err
}

func (r *UserRepo) Create(ctx context.Context, u *users.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) Update(ctx context.Context, u *users.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&users.User{}, "id = ?", id).Error
}
