package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskbook/internal/domain"
	"taskbook/internal/service"
)

type createArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

type updateArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Tags    *string `json:"tags"`
}

type ArticleResponse struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func (h *Handler) createArticle(c *gin.Context) {
	owner := currentOwner(c)
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	article, err := h.articles.CreateArticle(c.Request.Context(), owner.ID, req.Title, req.Content, req.Tags)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, articleToResponse(*article))
}

func (h *Handler) listArticles(c *gin.Context) {
	owner := currentOwner(c)
	articles, err := h.articles.ListArticles(c.Request.Context(), owner.ID, c.Query("tag"), c.Query("from"), c.Query("to"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ArticleResponse, len(articles))
	for i := range articles {
		resp[i] = articleToResponse(articles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getArticle(c *gin.Context) {
	owner := currentOwner(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	article, err := h.articles.GetArticle(c.Request.Context(), owner.ID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleToResponse(*article))
}

func (h *Handler) updateArticle(c *gin.Context) {
	owner := currentOwner(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articles.UpdateArticle(c.Request.Context(), owner.ID, id, service.ArticleUpdate{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleToResponse(*article))
}

func (h *Handler) deleteArticle(c *gin.Context) {
	owner := currentOwner(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.articles.DeleteArticle(c.Request.Context(), owner.ID, id); err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"deleted": id}
	if warn := h.cleanupAttachments(c.Request.Context(), id); warn != "" {
		resp["warnings"] = []string{warn}
	}
	c.JSON(http.StatusOK, resp)
}

// cleanupAttachments removes the article's attachment prefix best-effort;
// the row is already gone, so a storage failure only surfaces as a warning.
func (h *Handler) cleanupAttachments(ctx context.Context, articleID int64) string {
	if h.storage == nil || h.bucket == "" {
		return ""
	}
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := h.storage.DeletePrefix(cleanupCtx, h.bucket, h.attachmentPrefix(articleID)); err != nil {
		if h.logger != nil {
			h.logger.WithError(err).Warnf("delete attachments for article %d", articleID)
		}
		return fmt.Sprintf("delete attachments: %v", err)
	}
	return ""
}

type AttachmentResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func (h *Handler) uploadAttachment(c *gin.Context) {
	owner := currentOwner(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "attachment storage is not configured"})
		return
	}

	// ownership check; foreign articles 404 before any storage work
	if _, err := h.articles.GetArticle(c.Request.Context(), owner.ID, id); err != nil {
		h.respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s-%s", h.attachmentPrefix(id), uuid.NewString(), sanitizeFilename(fileHeader.Filename))
	location, err := h.storage.Upload(c.Request.Context(), h.bucket, key, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "location": location})
}

func (h *Handler) listAttachments(c *gin.Context) {
	owner := currentOwner(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "attachment storage is not configured"})
		return
	}

	if _, err := h.articles.GetArticle(c.Request.Context(), owner.ID, id); err != nil {
		h.respondError(c, err)
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.attachmentPrefix(id)+"/")
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]AttachmentResponse, len(objects))
	for i, obj := range objects {
		resp[i] = AttachmentResponse{Key: obj.Key, Size: obj.Size}
		if obj.LastModified != nil && !obj.LastModified.IsZero() {
			v := obj.LastModified.Format(time.RFC3339)
			resp[i].LastModified = &v
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) attachmentPrefix(articleID int64) string {
	prefix := strings.Trim(h.keyPrefix, "/")
	if prefix == "" {
		return fmt.Sprintf("articles/%d", articleID)
	}
	return fmt.Sprintf("%s/articles/%d", prefix, articleID)
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "attachment"
	}
	return name
}

func articleToResponse(article domain.Article) ArticleResponse {
	tags := []string{}
	if article.Tags != "" {
		tags = strings.Split(article.Tags, ",")
	}
	return ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Tags:      tags,
		CreatedAt: article.CreatedAt.Format(time.RFC3339),
		UpdatedAt: article.UpdatedAt.Format(time.RFC3339),
	}
}
