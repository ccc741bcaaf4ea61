package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskbook/internal/domain"
	"taskbook/internal/repository"
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL REFERENCES users(id),
	message TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) repository.EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEntriesTable); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

func (r *EntryRepository) Append(ctx context.Context, entry *domain.Entry) (int64, error) {
	entry.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO entries (owner_id, message, created_at)
VALUES (?, ?, ?)`,
		entry.OwnerID,
		entry.Message,
		entry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("entry last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *EntryRepository) List(ctx context.Context, ownerID int64) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, message, created_at
FROM entries
WHERE owner_id = ?
ORDER BY id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var entry domain.Entry
		if err := rows.Scan(&entry.ID, &entry.OwnerID, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
