package repository

import (
	"context"
	"time"

	"taskbook/internal/domain"
)

// ArticleUpdate carries the optional fields of an article update. Nil means
// the stored value is retained.
type ArticleUpdate struct {
	Title   *string
	Content *string
	Tags    *string
}

// ArticleFilter restricts a listing. Zero values mean no restriction; From
// and To bound the publishing timestamp inclusively.
type ArticleFilter struct {
	Tag  string
	From *time.Time
	To   *time.Time
}

// ArticleRepository exposes owner-scoped persistence operations for
// articles, under the same not-found rule as TaskRepository.
type ArticleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, article *domain.Article) (int64, error)
	List(ctx context.Context, ownerID int64, filter ArticleFilter) ([]domain.Article, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Article, error)
	Update(ctx context.Context, ownerID, id int64, fields ArticleUpdate) (*domain.Article, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
