package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/chhitz007/Blog-Posts/internal/apperror"
	"github.com/chhitz007/Blog-Posts/internal/auth"
	"github.com/chhitz007/Blog-Posts/internal/service"
)

// AuthHandler serves the register, login and logout routes.
type AuthHandler struct {
	auths    *service.AuthService
	renderer *Renderer
	logger   *slog.Logger
}

func NewAuthHandler(auths *service.AuthService, renderer *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auths:    auths,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleRegisterForm shows the registration form.
//
// HTTP: GET /register
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "register.html", &PageData{Title: "Register"})
}

// HandleRegister creates an account.
//
// HTTP: POST /register
//
// Validation and duplicate-username failures re-render the form inline with
// the entered username preserved (never the password). Success redirects to
// the login page with a flash notice.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := h.auths.Register(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrConflict) {
			h.renderer.Render(w, r, "register.html", &PageData{
				Title:     "Register",
				FormError: err.Error(),
				FormData:  map[string]string{"username": username},
			})
			return
		}
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "Registration successful!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginForm shows the login form.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "login.html", &PageData{Title: "Login"})
}

// HandleLogin verifies credentials and starts a session.
//
// HTTP: POST /login
//
// On success the signed session token goes into an HttpOnly cookie —
// JavaScript can't read it — and the browser is sent to the listing.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	result, err := h.auths.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrUnauthorized) {
			h.renderer.Render(w, r, "login.html", &PageData{
				Title:     "Login",
				FormError: err.Error(),
				FormData:  map[string]string{"username": username},
			})
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(auth.SessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
//
// HTTP: GET /logout (auth required)
//
// Clearing an already-cleared cookie is harmless, so logout is idempotent.
// The token itself stays valid until it expires; without the cookie the
// browser can no longer send it.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
