package ports

import (
	"context"

	"github.com/rolodex/contacts-api/internal/core/domain"
)

// ContactCache is a read-through cache for single-contact lookups.
// Get returns (nil, nil) on a miss; cache failures are never fatal to the
// request, only logged by the caller.
type ContactCache interface {
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Set(ctx context.Context, c *domain.Contact) error
	Invalidate(ctx context.Context, id string) error
}
