package ports

import (
	"context"

	"github.com/rolodex/contacts-api/internal/core/domain"
)

// ContactRepository defines persistence operations for contacts.
//
// FindByID is deliberately unscoped by owner: the service resolves the
// contact first and runs the ownership policy second, so a foreign contact
// yields 403 rather than 404.
type ContactRepository interface {
	Insert(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	// FindByOwner returns all contacts owned by userID, newest first.
	FindByOwner(ctx context.Context, userID string) ([]domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id string) error
}
