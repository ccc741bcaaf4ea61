package service

import (
	"context"
	"strings"

	"taskbook/internal/domain"
	"taskbook/internal/repository"
)

// GuestbookService appends and lists per-owner guestbook entries. The
// backing store is chosen at wiring time; sqlite and in-memory
// implementations behave identically.
type GuestbookService interface {
	Sign(ctx context.Context, ownerID int64, message string) (*domain.Entry, error)
	Entries(ctx context.Context, ownerID int64) ([]domain.Entry, error)
}

type guestbookService struct {
	entries repository.EntryRepository
}

func NewGuestbookService(entries repository.EntryRepository) GuestbookService {
	return &guestbookService{entries: entries}
}

func (s *guestbookService) Sign(ctx context.Context, ownerID int64, message string) (*domain.Entry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	entry := &domain.Entry{
		OwnerID: ownerID,
		Message: message,
	}
	if _, err := s.entries.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *guestbookService) Entries(ctx context.Context, ownerID int64) ([]domain.Entry, error) {
	return s.entries.List(ctx, ownerID)
}
