package model

import "time"

// Post represents a blog post.
//
// The bson tags map each field onto the document stored in the `posts`
// collection. Fields are explicit here even though the store itself is
// schemaless — the repository is the only place that talks to raw documents.
//
// Author is the creator's username, denormalized. It is NOT a foreign key:
// nothing enforces that a user document with that username still exists.
//
// Tags is an ordered list derived by splitting a comma-separated input field
// (see service.ParseTags). Edits replace the whole list, never merge.
//
// Comments is append-only and order-preserving. Comments are raw strings
// with no author attribution — anyone, logged in or not, can append one.
type Post struct {
	ID        string    `bson:"_id"        json:"id"`
	Title     string    `bson:"title"      json:"title"`
	Content   string    `bson:"content"    json:"content"`
	Author    string    `bson:"author"     json:"author"`
	Tags      []string  `bson:"tags"       json:"tags"`
	Comments  []string  `bson:"comments"   json:"comments"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
