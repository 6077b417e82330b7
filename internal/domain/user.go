package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the login identity behind a volunteer profile. Its ID is the
// user identifier every other table refers to.
type Credential struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type UserRole string

const (
	RoleVolunteer UserRole = "volunteer"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleVolunteer, RoleAdmin:
		return true
	default:
		return false
	}
}
