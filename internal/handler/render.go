// Package handler contains the HTTP handlers. This is a server-rendered
// HTML app: handlers parse form submissions, call the service layer, and
// either redirect or re-render the form with an inline error.
package handler

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/chhitz007/Blog-Posts/internal/auth"
	"github.com/chhitz007/Blog-Posts/internal/model"
)

// PageData is the payload handed to every template. Handlers fill in what
// their page needs; Render fills in CurrentUser and Flash.
type PageData struct {
	Title       string
	CurrentUser *model.User
	Flash       string
	FormError   string
	FormData    map[string]string // re-populates form fields after a failed submit
	Post        *model.Post
	Posts       []model.Post
	TagsRaw     string // comma-joined tags for the edit form
}

// Renderer holds the parsed template sets, one per page, each composed with
// the shared base layout. Parsing happens once at startup — a broken
// template fails the boot, not a request.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

var pageFiles = []string{
	"index.html",
	"register.html",
	"login.html",
	"create_post.html",
	"edit_post.html",
	"view_post.html",
}

// NewRenderer parses base.html together with each page template.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pageFiles))

	for _, page := range pageFiles {
		tmpl, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page),
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &Renderer{
		templates: templates,
		logger:    logger,
	}, nil
}

// Render executes the named page template inside the base layout.
//
// The template runs into a buffer first so a mid-render failure can still
// produce a clean 500 instead of a half-written page. The current user and
// any pending flash notice are attached here so individual handlers don't
// repeat it.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, page string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}

	if data.CurrentUser == nil {
		if user, ok := auth.UserFromContext(r.Context()); ok {
			data.CurrentUser = user
		}
	}
	if data.Flash == "" {
		data.Flash = popFlash(w, r)
	}

	tmpl, ok := rd.templates[page]
	if !ok {
		rd.logger.Error("unknown template requested", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

const flashCookieName = "flash"

// setFlash stores a one-shot notice shown on the next rendered page.
// The value is base64-encoded because cookie values can't carry spaces.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie. Returns "" when there is none.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
