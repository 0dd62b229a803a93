package subscription

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=store.go -destination=mock_store_test.go -package=subscription

// Store persists and validates subscriptions. It does not check ownership;
// Service is its only caller and gates every access by owner.
type Store interface {
	// Create validates f, applies defaults and stores a new record owned by owner.
	Create(ctx context.Context, owner uuid.UUID, f Fields) (Subscription, error)
	// FindByID returns ErrNotFound when no record has the id.
	FindByID(ctx context.Context, id uuid.UUID) (Subscription, error)
	// FindAllByOwner returns the owner's records, newest first. Never nil.
	FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]Subscription, error)
	// Update merges f onto the stored record and revalidates it atomically.
	Update(ctx context.Context, id uuid.UUID, f Fields) (Subscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
