package auth

import (
	"context"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
)

// Repository persists user accounts. Lookups return (nil, nil) when the
// user does not exist.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
