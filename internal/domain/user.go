package domain

import (
	"time"
)

// User represents a registered developer account.
//
// PasswordHash is tagged out of JSON so no handler can leak secret material,
// whichever projection it returns.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
