package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chhitz007/Blog-Posts/internal/apperror"
	"github.com/chhitz007/Blog-Posts/internal/model"
	"github.com/chhitz007/Blog-Posts/internal/repository"
)

// compile-time check that *Store implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// Create inserts a new user document.
//
// The ID and CreatedAt are generated here and written back through the
// pointer, so after Create the caller's struct is the canonical record.
// No uniqueness check happens at this level — the service is responsible
// for rejecting duplicate usernames before calling Create.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("mongodb: inserting user %q: %w", user.Username, err)
	}
	return nil
}

// GetByUsername looks a user up by username.
//
// FindOne returns the first matching document in natural order, which also
// defines the behaviour if duplicate usernames ever end up in the store:
// the earliest-inserted document wins.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("mongodb: getting user %q: %w", username, err)
	}

	return &u, nil
}
