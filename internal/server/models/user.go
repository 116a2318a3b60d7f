package models

import "time"

// User is the stored account record. Email uniquely identifies a user and
// is compared exactly as stored.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
