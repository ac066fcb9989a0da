package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"-"`
}

// SessionUser is the public projection of a User kept by clients as their session.
type SessionUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Session returns the public projection of u.
func (u User) Session() SessionUser {
	return SessionUser{ID: u.ID, Username: u.Username}
}
