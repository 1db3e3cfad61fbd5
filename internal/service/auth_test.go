package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/chhitz007/Blog-Posts/internal/apperror"
	"github.com/chhitz007/Blog-Posts/internal/auth"
	"github.com/chhitz007/Blog-Posts/internal/model"
)

// fakeUserRepo is an in-memory implementation of repository.UserRepository.
// A slice (not a map) so natural insertion order is observable, matching the
// store's FindOne behaviour.
type fakeUserRepo struct {
	users     []*model.User
	createErr error
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAuthService(t *testing.T, repo *fakeUserRepo) *AuthService {
	t.Helper()

	sessions, err := auth.NewSessionService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}

	// Cost 4 keeps bcrypt fast in tests.
	passwords := auth.NewPasswordServiceForTest(4)

	return NewAuthService(repo, sessions, passwords, testLogger())
}

func TestRegister_EmptyUsername(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), "", "password")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Register() error = %v, want ErrValidation", err)
	}
	if len(repo.users) != 0 {
		t.Error("Register() with empty username must not create a user")
	}
}

func TestRegister_EmptyPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), "alice", "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Register() error = %v, want ErrValidation", err)
	}
	if len(repo.users) != 0 {
		t.Error("Register() with empty password must not create a user")
	}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	user, err := svc.Register(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.PasswordHash == "hunter2" {
		t.Error("Register() stored the plaintext password")
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Errorf("PasswordHash does not look like bcrypt: %q", user.PasswordHash)
	}
	if user.ID == "" {
		t.Error("Register() should leave the repo-generated ID on the user")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "alice", "first"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "alice", "second")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("store has %d user documents, want 1", len(repo.users))
	}
}

func TestRegister_RepositoryError(t *testing.T) {
	repo := &fakeUserRepo{createErr: errors.New("store is down")}
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "alice", "pw"); err == nil {
		t.Fatal("Register() should propagate repository errors")
	}
}

func TestLogin_AfterRegister(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Login() returned an empty session token")
	}
	if result.User.Username != "alice" {
		t.Errorf("Login() user = %q, want %q", result.User.Username, "alice")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	_, err := svc.Login(context.Background(), "nobody", "pw")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_SameMessageForBothFailures(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), "nobody", "pw")
	_, errWrongPw := svc.Login(context.Background(), "alice", "wrong")

	if errUnknown == nil || errWrongPw == nil {
		t.Fatal("both logins should fail")
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("failure messages differ: %q vs %q — reveals which field was wrong",
			errUnknown.Error(), errWrongPw.Error())
	}
}

func TestLogin_TokenSubjectIsUsername(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo)

	sessions, err := auth.NewSessionService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}

	if _, err := svc.Register(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	result, err := svc.Login(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// The session identifies the user by USERNAME, not by generated ID.
	subject, err := sessions.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if subject != "alice" {
		t.Errorf("token subject = %q, want %q", subject, "alice")
	}
}
