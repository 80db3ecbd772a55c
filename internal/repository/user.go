package repository

import (
	"context"

	"user-registry/internal/domain"
)

// UserRepository defines persistence operations for the user collection.
//
// Get returns (nil, nil) when no user has the id. Update and Delete fail with
// a domain.KindNotFound error, Add with domain.KindDuplicateID.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Add(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
