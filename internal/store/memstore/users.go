package memstore

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"aydamarket.com/api/internal/modules/users"
)

type UserRepo struct{ db *DB }

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) List(_ context.Context) ([]users.User, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]users.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Get(_ context.Context, id string) (users.User, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return users.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	r.db.delay()
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, gorm.ErrRecordNotFound
}

func (r *UserRepo) Create(_ context.Context, u *users.User) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepo) Update(_ context.Context, u *users.User) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.db.delay()
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.users, id)
	return nil
}
