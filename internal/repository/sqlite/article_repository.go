package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskbook/internal/domain"
	"taskbook/internal/repository"
)

const createArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createArticlesTable); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (int64, error) {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO articles (owner_id, title, content, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		article.OwnerID,
		article.Title,
		article.Content,
		article.Tags,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("article last insert id: %w", err)
	}
	article.ID = id
	return id, nil
}

// List returns the owner's articles in insertion order, restricted by the
// filter. The tag match is done in Go since sqlite has no split function to
// search a comma list; the date bounds follow the same path to keep all
// filtering in one place.
func (r *ArticleRepository) List(ctx context.Context, ownerID int64, filter repository.ArticleFilter) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, title, content, tags, created_at, updated_at
FROM articles
WHERE owner_id = ?
ORDER BY id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		var article domain.Article
		if err := scanArticle(rows, &article); err != nil {
			return nil, err
		}
		if filter.Tag != "" && !hasTag(article.Tags, filter.Tag) {
			continue
		}
		if filter.From != nil && article.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && article.CreatedAt.After(*filter.To) {
			continue
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (r *ArticleRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Article, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, title, content, tags, created_at, updated_at
FROM articles
WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)

	var article domain.Article
	if err := scanArticle(row, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) Update(ctx context.Context, ownerID, id int64, fields repository.ArticleUpdate) (*domain.Article, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
SELECT id, owner_id, title, content, tags, created_at, updated_at
FROM articles
WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)

	var article domain.Article
	if err := scanArticle(row, &article); err != nil {
		return nil, err
	}

	if fields.Title != nil {
		article.Title = *fields.Title
	}
	if fields.Content != nil {
		article.Content = *fields.Content
	}
	if fields.Tags != nil {
		article.Tags = *fields.Tags
	}
	article.UpdatedAt = time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
UPDATE articles
SET title=?, content=?, tags=?, updated_at=?
WHERE id=? AND owner_id=?`,
		article.Title,
		article.Content,
		article.Tags,
		article.UpdatedAt,
		article.ID,
		article.OwnerID,
	); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit article update: %w", err)
	}
	return &article, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id=? AND owner_id=?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("article delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func hasTag(tags, tag string) bool {
	for _, t := range strings.Split(tags, ",") {
		if strings.TrimSpace(t) == tag {
			return true
		}
	}
	return false
}

func scanArticle(scanner interface {
	Scan(dest ...any) error
}, article *domain.Article) error {
	if err := scanner.Scan(
		&article.ID,
		&article.OwnerID,
		&article.Title,
		&article.Content,
		&article.Tags,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("scan article: %w", err)
	}
	return nil
}
