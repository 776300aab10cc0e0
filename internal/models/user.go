// Package models defines domain models for the practice hub.
package models

import (
	"crypto/rand"
	"time"

	"gorm.io/gorm"
)

const userKeyLength = 32

const base36Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// User represents a learner account, optionally linked to a GitHub login.
//
// Username, Email and AvatarURL are pointers because "never set" (NULL) and
// "cleared" (empty string) are distinct states: a username collision during
// reconciliation clears the loser's username to "", it does not null it out.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null;size:32" json:"key"`
	GithubID  *int64    `gorm:"column:github_id;uniqueIndex" json:"github_id"`
	Username  *string   `gorm:"size:255" json:"username"`
	Email     *string   `gorm:"size:255" json:"email"`
	AvatarURL *string   `gorm:"size:512" json:"avatar_url"`
	IsGuest   bool      `gorm:"not null;default:false" json:"is_guest"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the public key token if one was not provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.Key == "" {
		u.Key = NewUserKey()
	}
	return nil
}

// HasUsername reports whether the user currently holds a non-empty username.
func (u *User) HasUsername() bool {
	return u.Username != nil && *u.Username != ""
}

// NewUserKey generates a fresh account key: 32 random lowercase base-36
// characters. 36^32 possible values make a collision negligible; the unique
// index on users.key is the backstop.
func NewUserKey() string {
	buf := make([]byte, userKeyLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(buf)
}
