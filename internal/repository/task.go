package repository

import (
	"context"

	"taskbook/internal/domain"
)

// TaskUpdate carries the optional fields of a task update. Nil means the
// stored value is retained.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskRepository exposes owner-scoped persistence operations for tasks.
// Every lookup, update, and delete is restricted to the given owner; ids
// belonging to other owners report ErrNotFound.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	List(ctx context.Context, ownerID int64, status string) ([]domain.Task, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id int64, fields TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
