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

// compile-time check that *Store implements repository.PostRepository
var _ repository.PostRepository = (*PostStore)(nil)

// Create inserts a new post document.
//
// The ID is an xid: 20 URL-safe characters, sortable by creation time, so it
// can go straight into /view_post/{id} URLs without escaping. It is written
// back through the pointer along with the timestamps.
func (s *PostStore) Create(ctx context.Context, post *model.Post) error {
	post.ID = xid.New().String()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("mongodb: inserting post %q: %w", post.Title, err)
	}
	return nil
}

// GetByID retrieves a single post. Returns apperror.ErrNotFound for an
// unknown ID — the handler turns that into a clean 404 instead of rendering
// a nil post.
func (s *PostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post

	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("mongodb: getting post %s: %w", id, err)
	}

	return &p, nil
}

// List returns every post in natural order — the order documents were
// inserted. The listing page renders all of them; there is no pagination.
func (s *PostStore) List(ctx context.Context) ([]model.Post, error) {
	cursor, err := s.posts.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("mongodb: decoding posts: %w", err)
	}

	return posts, nil
}

// Update overwrites title, content and tags with a single $set. The tag list
// is always fully replaced, never merged; comments and author are left alone.
func (s *PostStore) Update(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()

	result, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$set": bson.M{
			"title":      post.Title,
			"content":    post.Content,
			"tags":       post.Tags,
			"updated_at": post.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("mongodb: updating post %s: %w", post.ID, err)
	}
	if result.MatchedCount == 0 {
		return apperror.NotFound("post", post.ID)
	}

	return nil
}

// AppendComment pushes one comment onto the post's comment array. $push is
// atomic at the document level, so concurrent comments interleave but are
// never lost or reordered once appended.
func (s *PostStore) AppendComment(ctx context.Context, id, comment string) error {
	result, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return fmt.Errorf("mongodb: appending comment to post %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return apperror.NotFound("post", id)
	}

	return nil
}
