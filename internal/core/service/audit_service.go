package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rolodex/contacts-api/internal/api/metrics"
	"github.com/rolodex/contacts-api/internal/core/domain"
	"github.com/rolodex/contacts-api/internal/core/ports"
)

// AuditService persists contact audit events delivered by the dispatcher.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Process stores a single audit event. Failures are surfaced to the caller
// (the dispatcher logs them) and metered; the originating request has
// already completed by the time this runs.
func (s *AuditService) Process(ctx context.Context, e domain.AuditEvent) error {
	start := time.Now()

	if err := s.repo.Insert(ctx, &e); err != nil {
		metrics.AuditEventsTotal.WithLabelValues(string(e.Action), "error").Inc()
		return err
	}

	metrics.AuditEventsTotal.WithLabelValues(string(e.Action), "ok").Inc()
	metrics.AuditProcessingDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug().
		Str("action", string(e.Action)).
		Str("contact_id", e.ContactID).
		Str("user_id", e.UserID).
		Msg("audit event recorded")

	return nil
}
