package domain

import "time"

// TaskStatusPending is the status assigned to newly created tasks. Status is
// otherwise a free-form string chosen by the owner.
const TaskStatusPending = "pending"

// Task is an owner-scoped to-do item.
type Task struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
