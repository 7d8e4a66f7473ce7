package entity

import "time"

// User is an identity record. Password holds the bcrypt hash, never the
// plaintext; it is stripped from every outbound JSON payload.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
