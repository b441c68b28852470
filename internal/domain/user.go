package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID  `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	PasswordHash       *string    `json:"-"`
	House              *string    `json:"house"`
	IsGoogleAccount    bool       `json:"isGoogleAccount"`
	WelcomeEmailSentAt *time.Time `json:"welcomeEmailSentAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// HasPassword reports whether the account can log in with a password.
// Google-only accounts are created without one.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
