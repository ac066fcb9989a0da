package models

import "time"

// VaultNotice is the disclosure every vault surface must show.
const VaultNotice = "Security notice: credentials are stored and transmitted unencrypted. Use the vault only for non-sensitive accounts."

// Credential is a stored login. Password is plaintext.
type Credential struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Service   string    `json:"service"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCredential is the input of a vault insert.
type NewCredential struct {
	UserID   int
	Service  string
	Email    string
	Password string
	Notes    *string
}
