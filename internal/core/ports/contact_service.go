package ports

import (
	"context"
	"time"

	"github.com/rolodex/contacts-api/internal/core/domain"
)

// ContactInput carries the four business fields accepted on create and
// update. Birthday is already parsed: raw input never crosses this boundary.
type ContactInput struct {
	Name     string
	Email    string
	Birthday time.Time
	Company  string
}

// ContactService defines the use-case operations for contacts. UserID is
// always the authenticated caller's identity taken from the token, never
// from the payload.
type ContactService interface {
	// Authorize resolves the target (when the action has one) and runs the
	// ownership policy. Handlers call it before validating the payload so
	// a missing or foreign target is reported ahead of any field errors.
	Authorize(ctx context.Context, userID, contactID string, action domain.Action) error
	List(ctx context.Context, userID string) ([]domain.Contact, error)
	Create(ctx context.Context, userID string, in ContactInput) (*domain.Contact, error)
	Get(ctx context.Context, userID, contactID string) (*domain.Contact, error)
	Update(ctx context.Context, userID, contactID string, in ContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, userID, contactID string) error
}
