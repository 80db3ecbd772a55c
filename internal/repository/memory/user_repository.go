package memory

import (
	"context"
	"sync"

	"user-registry/internal/domain"
	"user-registry/internal/repository"
)

// UserRepository is an in-memory user collection that preserves insertion order.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepository(seed ...domain.User) *UserRepository {
	return &UserRepository{users: append([]domain.User(nil), seed...)}
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User{}, r.users...), nil
}

func (r *UserRepository) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Add(_ context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == user.ID {
			return nil, domain.DuplicateID(user.ID)
		}
	}
	r.users = append(r.users, user)
	return &user, nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i] = r.users[i].Apply(patch)
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.NotFound(id)
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.NotFound(id)
}

var _ repository.UserRepository = (*UserRepository)(nil)
