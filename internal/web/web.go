// Package web embeds the single-page client served at the root path.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/teamjokbo/jokbo/internal/ctxkeys"
)

//go:embed index.html
var pageFS embed.FS

var page = template.Must(template.ParseFS(pageFS, "index.html"))

type pageData struct {
	CSRFToken string
}

// Handler renders the embedded page for "/". The per-session CSRF token is
// injected into a meta tag so the page's fetch calls can echo it back.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := page.Execute(w, pageData{
			CSRFToken: ctxkeys.CSRFToken(r.Context()),
		})
		if err != nil {
			slog.Error("failed to render page", "error", err)
		}
	}
}
