package models

import "time"

// User represents a user account in the system. Accounts created through
// Google federated login carry no password hash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	GoogleID     string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the subset of user fields returned by the auth endpoints.
type PublicUser struct {
	Email string `json:"email"`
}

// Public strips a user down to its client-visible fields.
func (u User) Public() PublicUser {
	return PublicUser{Email: u.Email}
}
