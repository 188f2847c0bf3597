package database

import (
	"context"

	"go-pos-inventory/internal/models"
)

// Gateway persists the whole application state as one snapshot.
// Load returns nil, nil when nothing has been stored yet.
type Gateway interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap models.Snapshot) error
}

// UserMemory keeps the "remember me" username between sessions.
type UserMemory interface {
	RememberUser(ctx context.Context, username string) error
	ForgetUser(ctx context.Context) error
	RememberedUser(ctx context.Context) (string, error)
}

// Store is what every storage driver provides.
type Store interface {
	Gateway
	UserMemory
}
