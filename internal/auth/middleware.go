package auth

import (
	"context"
	"net/http"

	"github.com/chhitz007/Blog-Posts/internal/model"
	"github.com/chhitz007/Blog-Posts/internal/repository"
)

// contextKey is unexported so only this package can read or write the
// current-user value in a request context.
type contextKey string

const userKey contextKey = "user"

// CurrentUser is applied to every route. It reads the session cookie,
// validates the token, and re-looks the user up by username in the store —
// the session carries a username, not a user document, so each request pays
// one lookup. On any failure (no cookie, bad token, user since deleted) the
// request simply proceeds anonymously; it is RequireUser's job to gate.
func CurrentUser(sessions *SessionService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			username, err := sessions.Validate(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser gates the write-capable routes (create post, edit post,
// logout). Anonymous callers are redirected to the login page rather than
// shown an error — this is a browser-facing app, not a JSON API.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the logged-in user, or (nil, false) for an
// anonymous request.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}
