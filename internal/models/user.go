package models

import "time"

type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       string    `json:"-"`
	Avatar             string    `json:"avatar"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

// AuthToken is one issued login session. Its ID is the hex-encoded
// SHA-256 of the opaque token held by the client, so the plain token
// never touches storage.
type AuthToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
