package domain

import "time"

// Article is an owner-scoped blog post. Tags is a comma-separated list and
// may be empty.
type Article struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	Tags      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
