// Package models defines the server-side records persisted in the database
// and their JSON shapes.
package models

import "time"

// User is a registered account. Usernames are stored lowercase. The password
// hash never leaves the server.
type User struct {
	ID           string    `db:"id" json:"_id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
