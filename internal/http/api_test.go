package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	apphttp "taskbook/internal/http"
	"taskbook/internal/repository/memory"
	"taskbook/internal/repository/sqlite"
	"taskbook/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	articleRepo := sqlite.NewArticleRepository(db)
	entryRepo := memory.NewEntryRepository()
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, taskRepo.Init(ctx))
	require.NoError(t, articleRepo.Init(ctx))
	require.NoError(t, entryRepo.Init(ctx))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := apphttp.NewHandler(
		service.NewUserService(userRepo),
		service.NewTaskService(taskRepo),
		service.NewArticleService(articleRepo),
		service.NewGuestbookService(entryRepo),
		nil, "", "",
		"test-secret",
		time.Hour,
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any, setAuth func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if setAuth != nil {
		setAuth(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func basic(username, password string) func(*http.Request) {
	return func(req *http.Request) { req.SetBasicAuth(username, password) }
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestRegisterContract(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decode(t, rec, &created)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "alice", created.Username)

	// missing fields
	rec = do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "bob"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// duplicate
	rec = do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "alice", "password": "other"}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRootPathsServeSameAPI(t *testing.T) {
	router := newTestRouter(t)

	// the original clients talk to /register and /tasks without the
	// /api prefix; both mounts must answer
	rec := do(t, router, http.MethodPost, "/register",
		map[string]string{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	alice := basic("alice", "secret123")

	rec = do(t, router, http.MethodPost, "/tasks",
		map[string]string{"title": "water plants", "description": "daily"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	var task apphttp.TaskResponse
	decode(t, rec, &task)

	rec = do(t, router, http.MethodGet, "/tasks", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []apphttp.TaskResponse
	decode(t, rec, &tasks)
	require.Len(t, tasks, 1)

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID),
		map[string]string{"status": "done"}, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	// records created via the root mount are visible under /api too
	rec = do(t, router, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &task)
	require.Equal(t, "done", task.Status)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/tasks/%d", task.ID), nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	// root mount is auth-guarded like /api
	rec = do(t, router, http.MethodGet, "/tasks", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthFailsClosed(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/tasks", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/tasks", nil, basic("ghost", "nope"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/tasks", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskScenario(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "bob", "password": "hunter22"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	alice := basic("alice", "secret123")
	bob := basic("bob", "hunter22")

	rec = do(t, router, http.MethodPost, "/api/tasks",
		map[string]string{"title": "buy milk", "description": "2%"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	var task apphttp.TaskResponse
	decode(t, rec, &task)
	require.Equal(t, "buy milk", task.Title)
	require.Equal(t, "pending", task.Status)

	rec = do(t, router, http.MethodGet, "/api/tasks?status=pending", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []apphttp.TaskResponse
	decode(t, rec, &tasks)
	require.Len(t, tasks, 1)
	require.Equal(t, task.ID, tasks[0].ID)

	// bob sees an empty list, and alice's task is 404 for him
	rec = do(t, router, http.MethodGet, "/api/tasks", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &tasks)
	require.Empty(t, tasks)

	rec = do(t, router, http.MethodGet, "/api/tasks/1", nil, bob)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// update returns the full post-update record
	rec = do(t, router, http.MethodPut, "/api/tasks/1",
		map[string]string{"status": "done"}, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &task)
	require.Equal(t, "done", task.Status)
	require.Equal(t, "buy milk", task.Title)

	// empty title is a validation failure
	rec = do(t, router, http.MethodPut, "/api/tasks/1",
		map[string]string{"title": "   "}, alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// delete, then the record is gone and a second delete is 404
	rec = do(t, router, http.MethodDelete, "/api/tasks/1", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/tasks/1", nil, alice)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, router, http.MethodDelete, "/api/tasks/1", nil, alice)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginAndBearerAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/login",
		map[string]string{"username": "alice", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/login",
		map[string]string{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	decode(t, rec, &login)
	require.NotEmpty(t, login.Token)

	rec = do(t, router, http.MethodGet, "/api/tasks", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+login.Token)
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestArticleEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	alice := basic("alice", "secret123")

	rec = do(t, router, http.MethodPost, "/api/articles",
		map[string]string{"title": "hello", "content": "first post", "tags": "go, web"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	var article apphttp.ArticleResponse
	decode(t, rec, &article)
	require.Equal(t, []string{"go", "web"}, article.Tags)

	rec = do(t, router, http.MethodGet, "/api/articles?tag=go", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var articles []apphttp.ArticleResponse
	decode(t, rec, &articles)
	require.Len(t, articles, 1)

	rec = do(t, router, http.MethodGet, "/api/articles?tag=python", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &articles)
	require.Empty(t, articles)

	day := 24 * time.Hour
	yesterday := time.Now().UTC().Add(-day).Format("2006-01-02")
	tomorrow := time.Now().UTC().Add(day).Format("2006-01-02")

	rec = do(t, router, http.MethodGet, "/api/articles?from="+yesterday+"&to="+tomorrow, nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &articles)
	require.Len(t, articles, 1)

	rec = do(t, router, http.MethodGet, "/api/articles?from="+tomorrow, nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &articles)
	require.Empty(t, articles)

	rec = do(t, router, http.MethodGet, "/api/articles?from=not-a-date", nil, alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// attachments surface is disabled without a configured bucket
	rec = do(t, router, http.MethodGet, "/api/articles/1/attachments", nil, alice)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGuestbookEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "alice", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/register",
		map[string]string{"username": "bob", "password": "hunter22"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	alice := basic("alice", "secret123")
	bob := basic("bob", "hunter22")

	rec = do(t, router, http.MethodPost, "/api/guestbook",
		map[string]string{"message": "first!"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/guestbook",
		map[string]string{"message": "   "}, alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/guestbook", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []apphttp.EntryResponse
	decode(t, rec, &entries)
	require.Len(t, entries, 1)
	require.Equal(t, "first!", entries[0].Message)

	rec = do(t, router, http.MethodGet, "/api/guestbook", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &entries)
	require.Empty(t, entries)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
