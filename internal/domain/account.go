package domain

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	Email            string         `db:"email" json:"email"`
	Password         string         `db:"password" json:"-"`
	VerificationCode sql.NullString `db:"verification_code" json:"-"`
	Verified         bool           `db:"verified" json:"verified"`
	VerifiedAt       *time.Time     `db:"verified_at" json:"verified_at,omitempty"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Profile is the part of an account that may leave the service.
type Profile struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
} // @name Profile

func (a *Account) Profile() Profile {
	return Profile{
		ID:         a.ID,
		Email:      a.Email,
		Verified:   a.Verified,
		VerifiedAt: a.VerifiedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// NormalizeEmail is the canonical form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
