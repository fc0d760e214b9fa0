package handler

import (
	"log/slog"
	"net/http"

	"github.com/teamjokbo/jokbo/internal/service"
)

type attachmentHandler struct {
	attachmentService *service.AttachmentService
}

func NewAttachmentHandler(attachmentService *service.AttachmentService) *attachmentHandler {
	return &attachmentHandler{
		attachmentService: attachmentService,
	}
}

// Refresh mints a short-lived replacement for a stale attachment link. This
// backs the table's per-link "refresh" affordance.
func (h *attachmentHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		Error(w, http.StatusBadRequest, "key is required")
		return
	}

	url, err := h.attachmentService.RefreshURL(r.Context(), key)
	if err != nil {
		slog.Warn("failed to refresh attachment link", "error", err, "key", key)
		Error(w, http.StatusBadGateway, "failed to refresh link")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
}
