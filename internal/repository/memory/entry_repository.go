// Package memory provides in-memory repository implementations, useful for
// tests and for running the guestbook without a database file.
package memory

import (
	"context"
	"sync"
	"time"

	"taskbook/internal/domain"
	"taskbook/internal/repository"
)

type EntryRepository struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64][]domain.Entry
}

func NewEntryRepository() repository.EntryRepository {
	return &EntryRepository{
		nextID:  1,
		entries: make(map[int64][]domain.Entry),
	}
}

func (r *EntryRepository) Init(ctx context.Context) error { return nil }

func (r *EntryRepository) Append(ctx context.Context, entry *domain.Entry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	entry.CreatedAt = time.Now().UTC()
	r.entries[entry.OwnerID] = append(r.entries[entry.OwnerID], *entry)
	return entry.ID, nil
}

func (r *EntryRepository) List(ctx context.Context, ownerID int64) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.entries[ownerID]
	entries := make([]domain.Entry, len(stored))
	copy(entries, stored)
	return entries, nil
}
