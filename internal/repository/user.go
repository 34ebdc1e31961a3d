// Package repository persists user credential records. Password hashing and
// comparison live here so callers never handle plaintext beyond the boundary.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateUserParams struct {
	Email     string
	FullName  string
	Password  string
	AvatarURL string
}

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create stores a new record, hashing the plaintext password.
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	// ComparePassword checks plain against the stored hash for the record.
	ComparePassword(user *User, plain string) error
}
