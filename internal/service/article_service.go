package service

import (
	"context"
	"strings"
	"time"

	"taskbook/internal/domain"
	"taskbook/internal/repository"
)

// ArticleUpdate carries the optional fields of an article update request.
// Tags may be set to the empty string to clear them.
type ArticleUpdate struct {
	Title   *string
	Content *string
	Tags    *string
}

type ArticleService interface {
	CreateArticle(ctx context.Context, ownerID int64, title, content, tags string) (*domain.Article, error)
	GetArticle(ctx context.Context, ownerID, id int64) (*domain.Article, error)
	ListArticles(ctx context.Context, ownerID int64, tag, from, to string) ([]domain.Article, error)
	UpdateArticle(ctx context.Context, ownerID, id int64, fields ArticleUpdate) (*domain.Article, error)
	DeleteArticle(ctx context.Context, ownerID, id int64) error
}

type articleService struct {
	articles repository.ArticleRepository
}

func NewArticleService(articles repository.ArticleRepository) ArticleService {
	return &articleService{articles: articles}
}

func (s *articleService) CreateArticle(ctx context.Context, ownerID int64, title, content, tags string) (*domain.Article, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	article := &domain.Article{
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Tags:    normalizeTags(tags),
	}

	if _, err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) GetArticle(ctx context.Context, ownerID, id int64) (*domain.Article, error) {
	article, err := s.articles.Get(ctx, ownerID, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return article, nil
}

// ListArticles restricts the listing by tag and by publishing date. The
// bounds accept a plain date (2006-01-02) or RFC 3339; a date-only upper
// bound covers the whole day.
func (s *articleService) ListArticles(ctx context.Context, ownerID int64, tag, from, to string) ([]domain.Article, error) {
	fromTime, err := parseDateBound(from, false)
	if err != nil {
		return nil, err
	}
	toTime, err := parseDateBound(to, true)
	if err != nil {
		return nil, err
	}

	return s.articles.List(ctx, ownerID, repository.ArticleFilter{
		Tag:  strings.TrimSpace(tag),
		From: fromTime,
		To:   toTime,
	})
}

func parseDateBound(s string, upper bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if upper {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		u := t.UTC()
		return &u, nil
	}
	return nil, ErrInvalidInput
}

func (s *articleService) UpdateArticle(ctx context.Context, ownerID, id int64, fields ArticleUpdate) (*domain.Article, error) {
	update := repository.ArticleUpdate{}
	if fields.Title != nil {
		v := strings.TrimSpace(*fields.Title)
		if v == "" {
			return nil, ErrInvalidInput
		}
		update.Title = &v
	}
	if fields.Content != nil {
		v := strings.TrimSpace(*fields.Content)
		if v == "" {
			return nil, ErrInvalidInput
		}
		update.Content = &v
	}
	if fields.Tags != nil {
		v := normalizeTags(*fields.Tags)
		update.Tags = &v
	}

	article, err := s.articles.Update(ctx, ownerID, id, update)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return article, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, ownerID, id int64) error {
	if err := s.articles.Delete(ctx, ownerID, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// normalizeTags trims each element of the comma list and drops empties, so
// "go, web ," stores as "go,web".
func normalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	kept := parts[:0]
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ",")
}
