package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rolodex/contacts-api/internal/api/metrics"
	"github.com/rolodex/contacts-api/internal/core/domain"
	"github.com/rolodex/contacts-api/internal/core/ports"
)

// ContactService implements the contact use cases: authorize, persist,
// present. Every operation receives the caller's user id resolved from the
// bearer token; the payload can never override ownership.
type ContactService struct {
	repo   ports.ContactRepository
	cache  ports.ContactCache
	audit  ports.AuditDispatcher
	logger zerolog.Logger
}

// NewContactService builds a ContactService. cache and audit may be nil;
// both are best-effort side channels, not part of the persistence contract.
func NewContactService(repo ports.ContactRepository, cache ports.ContactCache, audit ports.AuditDispatcher, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, cache: cache, audit: audit, logger: logger}
}

// Authorize resolves the target contact (for targeted actions) and runs the
// ownership policy without touching the payload. A missing id surfaces as
// ErrContactNotFound and a foreign contact as ErrForbidden, in that order.
func (s *ContactService) Authorize(ctx context.Context, userID, contactID string, action domain.Action) error {
	var target *domain.Contact
	if contactID != "" {
		var err error
		target, err = s.repo.FindByID(ctx, contactID)
		if err != nil {
			return err
		}
	}
	if !domain.Allow(action, userID, target) {
		metrics.AuthzDeniedTotal.WithLabelValues(string(action)).Inc()
		return domain.ErrForbidden
	}
	return nil
}

// List returns all contacts owned by userID, newest first.
func (s *ContactService) List(ctx context.Context, userID string) ([]domain.Contact, error) {
	if !domain.Allow(domain.ActionViewAny, userID, nil) {
		metrics.AuthzDeniedTotal.WithLabelValues(string(domain.ActionViewAny)).Inc()
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByOwner(ctx, userID)
}

// Create persists a new contact owned by userID.
func (s *ContactService) Create(ctx context.Context, userID string, in ports.ContactInput) (*domain.Contact, error) {
	if !domain.Allow(domain.ActionCreate, userID, nil) {
		metrics.AuthzDeniedTotal.WithLabelValues(string(domain.ActionCreate)).Inc()
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	contact := &domain.Contact{
		UserID:    userID,
		Name:      in.Name,
		Email:     in.Email,
		Birthday:  in.Birthday,
		Company:   in.Company,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, contact)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create contact")
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues(string(domain.ActionCreate)).Inc()
	s.recordAudit(domain.ActionCreate, created.ID, userID)
	s.logger.Info().Str("contact_id", created.ID).Str("user_id", userID).Msg("contact created")

	return created, nil
}

// Get returns a single contact. The contact is resolved before the policy
// runs: a missing id is 404, an existing contact owned by someone else is
// 403, never conflated.
func (s *ContactService) Get(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	contact, err := s.resolve(ctx, contactID)
	if err != nil {
		return nil, err
	}

	if !domain.Allow(domain.ActionView, userID, contact) {
		metrics.AuthzDeniedTotal.WithLabelValues(string(domain.ActionView)).Inc()
		return nil, domain.ErrForbidden
	}
	return contact, nil
}

// Update replaces all four business fields on the target contact. ID and
// UserID are never touched.
func (s *ContactService) Update(ctx context.Context, userID, contactID string, in ports.ContactInput) (*domain.Contact, error) {
	contact, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	if !domain.Allow(domain.ActionUpdate, userID, contact) {
		metrics.AuthzDeniedTotal.WithLabelValues(string(domain.ActionUpdate)).Inc()
		return nil, domain.ErrForbidden
	}

	contact.Name = in.Name
	contact.Email = in.Email
	contact.Birthday = in.Birthday
	contact.Company = in.Company
	contact.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, contact); err != nil {
		s.logger.Error().Err(err).Str("contact_id", contactID).Msg("failed to update contact")
		return nil, err
	}

	s.invalidate(ctx, contactID)
	metrics.MutationsTotal.WithLabelValues(string(domain.ActionUpdate)).Inc()
	s.recordAudit(domain.ActionUpdate, contactID, userID)
	s.logger.Info().Str("contact_id", contactID).Str("user_id", userID).Msg("contact updated")

	return contact, nil
}

// Delete removes the contact. Terminal: there is no soft delete.
func (s *ContactService) Delete(ctx context.Context, userID, contactID string) error {
	contact, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return err
	}

	if !domain.Allow(domain.ActionDelete, userID, contact) {
		metrics.AuthzDeniedTotal.WithLabelValues(string(domain.ActionDelete)).Inc()
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, contactID); err != nil {
		s.logger.Error().Err(err).Str("contact_id", contactID).Msg("failed to delete contact")
		return err
	}

	s.invalidate(ctx, contactID)
	metrics.MutationsTotal.WithLabelValues(string(domain.ActionDelete)).Inc()
	s.recordAudit(domain.ActionDelete, contactID, userID)
	s.logger.Info().Str("contact_id", contactID).Str("user_id", userID).Msg("contact deleted")

	return nil
}

// resolve loads a contact through the cache when one is configured, falling
// back to the repository and filling the cache on a miss.
func (s *ContactService) resolve(ctx context.Context, contactID string) (*domain.Contact, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, contactID)
		switch {
		case err != nil:
			metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("contact_id", contactID).Msg("contact cache lookup failed")
		case cached != nil:
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		}
	}

	contact, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, contact); err != nil {
			s.logger.Warn().Err(err).Str("contact_id", contactID).Msg("contact cache fill failed")
		}
	}
	return contact, nil
}

func (s *ContactService) invalidate(ctx context.Context, contactID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, contactID); err != nil {
		s.logger.Warn().Err(err).Str("contact_id", contactID).Msg("contact cache invalidation failed")
	}
}

func (s *ContactService) recordAudit(action domain.Action, contactID, userID string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Action:     action,
		ContactID:  contactID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}
