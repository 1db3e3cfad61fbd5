// Package mongodb implements the repository interfaces on top of MongoDB.
//
// The blog keeps two collections, `users` and `posts`. Documents are mapped
// to and from the typed structs in internal/model via their bson tags — no
// other package touches raw documents.
//
// The store is deliberately schemaless: there are no indexes and no
// uniqueness constraints here. What little integrity the application needs
// (required fields, duplicate usernames) is enforced in the service layer.
// Single-document operations — InsertOne, and the $set/$push updates below —
// are atomic per document; there are no cross-document transactions, so
// concurrent edits to the same post are last-writer-wins.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store wraps a Mongo client and the two collection handles.
//
// It implements both repository.UserRepository and repository.PostRepository;
// the server hands it to the services as those interfaces.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	posts  *mongo.Collection
}

// UserStore is the users view of the Store; it carries the
// repository.UserRepository method set.
type UserStore struct {
	*Store
}

// PostStore is the posts view of the Store; it carries the
// repository.PostRepository method set.
type PostStore struct {
	*Store
}

// Users returns the store as a repository.UserRepository implementation.
func (s *Store) Users() *UserStore {
	return &UserStore{Store: s}
}

// Posts returns the store as a repository.PostRepository implementation.
func (s *Store) Posts() *PostStore {
	return &PostStore{Store: s}
}

// Connect dials MongoDB and pings it so a bad URI fails at startup rather
// than on the first request.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: pinging %s: %w", uri, err)
	}

	db := client.Database(database)
	return &Store{
		client: client,
		users:  db.Collection("users"),
		posts:  db.Collection("posts"),
	}, nil
}

// Close disconnects the underlying client. Call it on shutdown.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
