package handler_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chhitz007/Blog-Posts/internal/apperror"
	"github.com/chhitz007/Blog-Posts/internal/auth"
	"github.com/chhitz007/Blog-Posts/internal/handler"
	"github.com/chhitz007/Blog-Posts/internal/model"
	"github.com/chhitz007/Blog-Posts/internal/service"
)

// In-memory fakes for the two repositories, so handler tests exercise the
// real router, middleware, services and templates without a live store.

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	user.CreatedAt = time.Now()
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

type fakePostRepo struct {
	posts []*model.Post
}

func (f *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = fmt.Sprintf("post-%d", len(f.posts)+1)
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	copied := *post
	f.posts = append(f.posts, &copied)
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*model.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("post", id)
}

func (f *fakePostRepo) List(_ context.Context) ([]model.Post, error) {
	posts := make([]model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

func (f *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	for _, p := range f.posts {
		if p.ID == post.ID {
			p.Title = post.Title
			p.Content = post.Content
			p.Tags = post.Tags
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperror.NotFound("post", post.ID)
}

func (f *fakePostRepo) AppendComment(_ context.Context, id, comment string) error {
	for _, p := range f.posts {
		if p.ID == id {
			p.Comments = append(p.Comments, comment)
			return nil
		}
	}
	return apperror.NotFound("post", id)
}

// testApp bundles the assembled router and everything a test might want to
// poke at directly.
type testApp struct {
	router   *chi.Mux
	users    *fakeUserRepo
	posts    *fakePostRepo
	sessions *auth.SessionService
}

// newTestApp wires the same dependency chain as internal/server, with fakes
// in place of the Mongo store and the real templates from web/templates.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	sessions, err := auth.NewSessionService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(4)

	users := &fakeUserRepo{}
	posts := &fakePostRepo{}

	authService := service.NewAuthService(users, sessions, passwords, logger)
	postService := service.NewPostService(posts, logger)

	renderer, err := handler.NewRenderer("../../web/templates", logger)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	authHandler := handler.NewAuthHandler(authService, renderer, logger)
	postHandler := handler.NewPostHandler(postService, renderer, logger)

	router := chi.NewRouter()
	router.Use(auth.CurrentUser(sessions, users))

	router.Get("/", postHandler.HandleIndex)
	router.Get("/register", authHandler.HandleRegisterForm)
	router.Post("/register", authHandler.HandleRegister)
	router.Get("/login", authHandler.HandleLoginForm)
	router.Post("/login", authHandler.HandleLogin)
	router.Get("/view_post/{id}", postHandler.HandleView)
	router.Post("/view_post/{id}", postHandler.HandleComment)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/logout", authHandler.HandleLogout)
		r.Get("/create_post", postHandler.HandleCreateForm)
		r.Post("/create_post", postHandler.HandleCreate)
		r.Get("/edit_post/{id}", postHandler.HandleEditForm)
		r.Post("/edit_post/{id}", postHandler.HandleEdit)
	})

	return &testApp{
		router:   router,
		users:    users,
		posts:    posts,
		sessions: sessions,
	}
}

// loginAs seeds a user document and returns a valid session cookie for it.
func (app *testApp) loginAs(t *testing.T, username string) *http.Cookie {
	t.Helper()

	if _, err := app.users.GetByUsername(context.Background(), username); err != nil {
		user := &model.User{Username: username, PasswordHash: "$2a$04$irrelevant"}
		if err := app.users.Create(context.Background(), user); err != nil {
			t.Fatalf("seeding user %q: %v", username, err)
		}
	}

	token, err := app.sessions.Issue(username)
	if err != nil {
		t.Fatalf("issuing session for %q: %v", username, err)
	}

	return &http.Cookie{Name: auth.CookieName, Value: token}
}

// postForm performs a form POST against the router, optionally with a
// session cookie, and returns the recorder.
func (app *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)
	return rr
}

func (app *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)
	return rr
}
