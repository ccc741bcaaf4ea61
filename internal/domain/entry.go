package domain

import "time"

// Entry is a single guestbook message. Entries are append-only.
type Entry struct {
	ID        int64
	OwnerID   int64
	Message   string
	CreatedAt time.Time
}
