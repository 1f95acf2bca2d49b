package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines read access to users. Registration lives outside this service.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// User is the identity anchor every interview hangs off.
type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Locale    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
