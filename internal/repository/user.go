package repository

import (
	"context"

	"taskbook/internal/domain"
)

// UserRepository defines persistence operations for User entities. Create
// must treat the uniqueness check and insert as one atomic step; a duplicate
// username yields ErrAlreadyExists.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
