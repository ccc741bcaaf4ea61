package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskbook/internal/domain"
)

type signGuestbookRequest struct {
	Message string `json:"message"`
}

type EntryResponse struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) signGuestbook(c *gin.Context) {
	owner := currentOwner(c)
	var req signGuestbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	entry, err := h.guestbook.Sign(c.Request.Context(), owner.ID, req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entryToResponse(*entry))
}

func (h *Handler) listGuestbook(c *gin.Context) {
	owner := currentOwner(c)
	entries, err := h.guestbook.Entries(c.Request.Context(), owner.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]EntryResponse, len(entries))
	for i := range entries {
		resp[i] = entryToResponse(entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func entryToResponse(entry domain.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID,
		Message:   entry.Message,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}
