// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// The username is the lookup key for both login and session loading — the
// session cookie's subject is the username, not the generated ID, so every
// authenticated request re-fetches the user document by username. The
// generated ID exists so user documents have a stable `_id` like every
// other document in the store.
//
// PasswordHash is a bcrypt hash (salt embedded in the string). The plaintext
// password is never stored and never appears in this struct.
type User struct {
	ID           string    `bson:"_id"        json:"id"`
	Username     string    `bson:"username"   json:"username"`
	PasswordHash string    `bson:"password"   json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
