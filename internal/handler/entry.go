package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/teamjokbo/jokbo/internal/ctxkeys"
	"github.com/teamjokbo/jokbo/internal/model"
	"github.com/teamjokbo/jokbo/internal/repository"
	"github.com/teamjokbo/jokbo/internal/service"
	"github.com/teamjokbo/jokbo/internal/validation"
)

// multipartMemory is the in-memory threshold for parsing uploads; larger
// parts spill to temp files.
const multipartMemory = 32 << 20

type entryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(entryService *service.EntryService) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

type entryListResponse struct {
	Entries    []*model.Entry    `json:"entries"`
	SignedURLs map[string]string `json:"signed_urls"`
}

// List serves the filtered table: ?q= free text, ?type= item-type chip.
func (h *entryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	typeFilter := r.URL.Query().Get("type")

	entries, signed, err := h.entryService.List(r.Context(), query, typeFilter)
	if err != nil {
		slog.Error("failed to list entries", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load entries")
		return
	}

	JSON(w, http.StatusOK, entryListResponse{Entries: entries, SignedURLs: signed})
}

// Create inserts a new entry from the multipart form (fields + staged
// files). The session identity becomes the creator.
func (h *entryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	in, files, err := parseEntryForm(r)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, signed, err := h.entryService.Create(r.Context(), in, files, user.Email)
	if err != nil {
		h.writeMutationError(w, err, "create")
		return
	}

	JSON(w, http.StatusCreated, entryListResponse{Entries: []*model.Entry{entry}, SignedURLs: signed})
}

// Update edits the entry identified by the path id.
func (h *entryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	in, files, err := parseEntryForm(r)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, signed, err := h.entryService.Update(r.Context(), id, in, files)
	if err != nil {
		h.writeMutationError(w, err, "update")
		return
	}

	JSON(w, http.StatusOK, entryListResponse{Entries: []*model.Entry{entry}, SignedURLs: signed})
}

func (h *entryHandler) writeMutationError(w http.ResponseWriter, err error, op string) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		FieldErrors(w, fieldErrs)
		return
	}

	if errors.Is(err, repository.ErrEntryNotFound) {
		Error(w, http.StatusNotFound, "entry not found")
		return
	}

	// Backend failure: surface the raw message so the client can show it
	// and keep the form populated for retry.
	slog.Error("entry mutation failed", "op", op, "error", err)
	Error(w, http.StatusBadGateway, err.Error())
}

func parseEntryForm(r *http.Request) (validation.EntryInput, []*multipart.FileHeader, error) {
	err := r.ParseMultipartForm(multipartMemory)
	if err != nil {
		return validation.EntryInput{}, nil, errors.New("expected multipart form data")
	}

	in := validation.EntryInput{
		Category:   r.FormValue("category"),
		ItemType:   r.FormValue("item_type"),
		ReviewText: r.FormValue("review_text"),
		SharedAt:   r.FormValue("shared_at"),
		AuthorName: r.FormValue("author_name"),
		Note:       r.FormValue("note"),
		LinkURL:    r.FormValue("link_url"),
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["attachments"]
	}

	return in, files, nil
}
