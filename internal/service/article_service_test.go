package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskbook/internal/repository"
	"taskbook/internal/repository/sqlite"
)

func newTestArticleRepo(t *testing.T) repository.ArticleRepository {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	require.NoError(t, users.Init(context.Background()))
	seedOwners(t, users)
	repo := sqlite.NewArticleRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestCreateArticleNormalizesTags(t *testing.T) {
	svc := NewArticleService(newTestArticleRepo(t))
	ctx := context.Background()

	article, err := svc.CreateArticle(ctx, 1, "hello", "world", " go , web ,, ")
	require.NoError(t, err)
	require.Equal(t, "go,web", article.Tags)
}

func TestListArticlesFilterByTag(t *testing.T) {
	svc := NewArticleService(newTestArticleRepo(t))
	ctx := context.Background()

	tagged, err := svc.CreateArticle(ctx, 1, "go post", "content", "go,web")
	require.NoError(t, err)
	_, err = svc.CreateArticle(ctx, 1, "other", "content", "life")
	require.NoError(t, err)

	got, err := svc.ListArticles(ctx, 1, "go", "", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, tagged.ID, got[0].ID)

	// tag match is exact, not substring
	got, err = svc.ListArticles(ctx, 1, "g", "", "")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = svc.ListArticles(ctx, 1, "", "", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestListArticlesFilterByDate(t *testing.T) {
	svc := NewArticleService(newTestArticleRepo(t))
	ctx := context.Background()

	_, err := svc.CreateArticle(ctx, 1, "today", "content", "")
	require.NoError(t, err)

	day := 24 * time.Hour
	yesterday := time.Now().UTC().Add(-day).Format("2006-01-02")
	tomorrow := time.Now().UTC().Add(day).Format("2006-01-02")

	got, err := svc.ListArticles(ctx, 1, "", yesterday, tomorrow)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// published before the lower bound
	got, err = svc.ListArticles(ctx, 1, "", tomorrow, "")
	require.NoError(t, err)
	require.Empty(t, got)

	// published after the upper bound
	got, err = svc.ListArticles(ctx, 1, "", "", yesterday)
	require.NoError(t, err)
	require.Empty(t, got)

	// RFC 3339 bounds work too
	got, err = svc.ListArticles(ctx, 1, "", time.Now().UTC().Add(-time.Hour).Format(time.RFC3339), "")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListArticles(ctx, 1, "", "not-a-date", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestArticlesAreOwnerScoped(t *testing.T) {
	svc := NewArticleService(newTestArticleRepo(t))
	ctx := context.Background()

	article, err := svc.CreateArticle(ctx, 1, "mine", "content", "")
	require.NoError(t, err)

	_, err = svc.GetArticle(ctx, 2, article.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteArticle(ctx, 2, article.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateArticleClearTags(t *testing.T) {
	svc := NewArticleService(newTestArticleRepo(t))
	ctx := context.Background()

	article, err := svc.CreateArticle(ctx, 1, "title", "content", "go")
	require.NoError(t, err)

	empty := ""
	updated, err := svc.UpdateArticle(ctx, 1, article.ID, ArticleUpdate{Tags: &empty})
	require.NoError(t, err)
	require.Empty(t, updated.Tags)
	require.Equal(t, "title", updated.Title)
}
