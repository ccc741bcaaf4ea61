package repository

import (
	"context"

	"taskbook/internal/domain"
)

// EntryRepository stores guestbook entries per owner. Implementations may be
// persistent (sqlite) or in-memory; callers see the same interface either
// way.
type EntryRepository interface {
	Init(ctx context.Context) error
	Append(ctx context.Context, entry *domain.Entry) (int64, error)
	List(ctx context.Context, ownerID int64) ([]domain.Entry, error)
}
