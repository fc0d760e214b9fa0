package handler

import (
	"net/http"

	"github.com/teamjokbo/jokbo/internal/refdata"
)

type optionsHandler struct{}

func NewOptionsHandler() *optionsHandler {
	return &optionsHandler{}
}

// List serves the searchable selector's option lists, filtered by ?q=.
// {kind} is "categories" or "members".
func (h *optionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var options []refdata.Option
	switch r.PathValue("kind") {
	case "categories":
		options = refdata.Categories()
	case "members":
		options = refdata.TeamMembers()
	default:
		Error(w, http.StatusNotFound, "unknown option list")
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"options": refdata.Filter(options, r.URL.Query().Get("q")),
	})
}
