package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chhitz007/Blog-Posts/internal/apperror"
	"github.com/chhitz007/Blog-Posts/internal/auth"
	"github.com/chhitz007/Blog-Posts/internal/service"
)

// PostHandler serves the listing, authoring, viewing and editing routes.
type PostHandler struct {
	posts    *service.PostService
	renderer *Renderer
	logger   *slog.Logger
}

func NewPostHandler(posts *service.PostService, renderer *Renderer, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		posts:    posts,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleIndex lists every post in creation order.
//
// HTTP: GET /
func (h *PostHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.logger.Error("listing posts failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "index.html", &PageData{
		Title: "All Posts",
		Posts: posts,
	})
}

// HandleCreateForm shows the authoring form.
//
// HTTP: GET /create_post (auth required)
func (h *PostHandler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "create_post.html", &PageData{Title: "New Post"})
}

// HandleCreate saves a new post authored by the logged-in user.
//
// HTTP: POST /create_post (auth required)
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// RequireUser already gates this route; belt and braces.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	tagsRaw := r.FormValue("tags")

	_, err := h.posts.Create(r.Context(), title, content, tagsRaw, user.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.renderer.Render(w, r, "create_post.html", &PageData{
				Title:     "New Post",
				FormError: err.Error(),
				FormData: map[string]string{
					"title":   title,
					"content": content,
					"tags":    tagsRaw,
				},
			})
			return
		}
		h.logger.Error("creating post failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "Post created!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleView renders a post with its comments in insertion order.
//
// HTTP: GET /view_post/{id}
func (h *PostHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.writePostError(w, r, id, err)
		return
	}

	h.renderer.Render(w, r, "view_post.html", &PageData{
		Title: post.Title,
		Post:  post,
	})
}

// HandleComment appends a comment and redirects back to the post.
//
// HTTP: POST /view_post/{id}
//
// No login is required, no author is recorded, and empty comments are
// accepted — commenting is open to any visitor.
func (h *PostHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	comment := r.FormValue("comment")

	if err := h.posts.AddComment(r.Context(), id, comment); err != nil {
		h.writePostError(w, r, id, err)
		return
	}

	setFlash(w, "Comment added!")
	http.Redirect(w, r, "/view_post/"+id, http.StatusSeeOther)
}

// HandleEditForm shows the edit form pre-populated with the current values.
//
// HTTP: GET /edit_post/{id} (auth required)
//
// Tags are joined back with ", " for the form field, the inverse of
// service.ParseTags up to whitespace.
func (h *PostHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.writePostError(w, r, id, err)
		return
	}

	h.renderer.Render(w, r, "edit_post.html", &PageData{
		Title:   "Edit Post",
		Post:    post,
		TagsRaw: strings.Join(post.Tags, ", "),
		FormData: map[string]string{
			"title":   post.Title,
			"content": post.Content,
			"tags":    strings.Join(post.Tags, ", "),
		},
	})
}

// HandleEdit overwrites a post's title, content and tags.
//
// HTTP: POST /edit_post/{id} (auth required)
//
// Any logged-in user may edit any post — edits are not scoped to the
// original author.
func (h *PostHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	title := r.FormValue("title")
	content := r.FormValue("content")
	tagsRaw := r.FormValue("tags")

	_, err := h.posts.Update(r.Context(), id, title, content, tagsRaw)
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.renderer.Render(w, r, "edit_post.html", &PageData{
				Title:     "Edit Post",
				FormError: err.Error(),
				FormData: map[string]string{
					"title":   title,
					"content": content,
					"tags":    tagsRaw,
				},
			})
			return
		}
		h.writePostError(w, r, id, err)
		return
	}

	setFlash(w, "Post updated!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// writePostError maps a post lookup failure onto an HTTP response: a clean
// 404 for unknown or missing IDs, 500 for everything else.
func (h *PostHandler) writePostError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrValidation) {
		http.NotFound(w, r)
		return
	}
	h.logger.Error("post request failed",
		slog.String("id", id),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
