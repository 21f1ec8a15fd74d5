package ports

import (
	"context"

	"github.com/rolodex/contacts-api/internal/core/domain"
)

// AuditRepository persists contact audit events.
type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEvent) error
}

// AuditService processes a single audit event end to end.
type AuditService interface {
	Process(ctx context.Context, e domain.AuditEvent) error
}

// AuditDispatcher hands an audit event to the async pipeline. Enqueue must
// not block the request path beyond channel buffering.
type AuditDispatcher interface {
	Enqueue(e domain.AuditEvent)
}
