package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// ReleaseService manages release notes and their partner exposure.
// Partner users only see notes published to partners whose view cap
// has not been exhausted; each partner read counts against the cap.
type ReleaseService struct {
	releaseRepo catalog.ReleaseNoteRepository
	logger      *zap.Logger
}

// NewReleaseService creates a new release service
func NewReleaseService(releaseRepo catalog.ReleaseNoteRepository, logger *zap.Logger) *ReleaseService {
	return &ReleaseService{
		releaseRepo: releaseRepo,
		logger:      logger,
	}
}

// Create adds an unpublished release note
func (s *ReleaseService) Create(ctx context.Context, actor identity.Actor, input CreateReleaseNoteInput) (*catalog.ReleaseNote, error) {
	if err := actor.Require("releases.manage"); err != nil {
		return nil, err
	}

	if _, err := s.releaseRepo.FindByVersion(ctx, input.Version); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A release note with this version already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	note, err := catalog.NewReleaseNote(input.Version, input.Title, actor.UserID)
	if err != nil {
		return nil, err
	}
	note.SetContent(input.Description, input.Changes)

	if err := s.releaseRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("Release note created",
		zap.String("release_id", note.ID.String()),
		zap.String("version", note.Version))

	return note, nil
}

// Update changes the title or body of a note
func (s *ReleaseService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, input UpdateReleaseNoteInput) (*catalog.ReleaseNote, error) {
	if err := actor.Require("releases.manage"); err != nil {
		return nil, err
	}

	note, err := s.releaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Description != nil || input.Changes != nil {
		description, changes := note.Description, note.Changes
		if input.Description != nil {
			description = *input.Description
		}
		if input.Changes != nil {
			changes = *input.Changes
		}
		note.SetContent(description, changes)
	}

	if err := s.releaseRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Publish makes the note visible to internal users
func (s *ReleaseService) Publish(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalog.ReleaseNote, error) {
	if err := actor.Require("releases.manage"); err != nil {
		return nil, err
	}

	note, err := s.releaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := note.Publish(); err != nil {
		return nil, err
	}

	if err := s.releaseRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("Release note published", zap.String("version", note.Version))
	return note, nil
}

// Unpublish hides the note from everyone again
func (s *ReleaseService) Unpublish(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalog.ReleaseNote, error) {
	if err := actor.Require("releases.manage"); err != nil {
		return nil, err
	}

	note, err := s.releaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Unpublish()

	if err := s.releaseRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// PublishToPartners exposes a published note to partner users,
// optionally capped to the first N partner views
func (s *ReleaseService) PublishToPartners(ctx context.Context, actor identity.Actor, id uuid.UUID, input PublishToPartnersInput) (*catalog.ReleaseNote, error) {
	if err := actor.Require("releases.manage"); err != nil {
		return nil, err
	}

	note, err := s.releaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := note.PublishToPartners(input.MaxViews); err != nil {
		return nil, err
	}

	if err := s.releaseRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("Release note published to partners",
		zap.String("version", note.Version),
		zap.Bool("capped", input.MaxViews != nil))

	return note, nil
}

// List returns release notes visible to the actor. Managers see every
// note, internal users see published notes, partner users see only
// notes still open to partners.
func (s *ReleaseService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (shared.Paginated[catalog.ReleaseNote], error) {
	if actor.Has("releases.manage") {
		notes, err := s.releaseRepo.FindAll(ctx, filter)
		if err != nil {
			return shared.Paginated[catalog.ReleaseNote]{}, err
		}
		total, err := s.releaseRepo.Count(ctx, filter)
		if err != nil {
			return shared.Paginated[catalog.ReleaseNote]{}, err
		}
		return shared.NewPaginated(notes, total, filter.Page, filter.PageSize), nil
	}

	if !actor.HasAny("releases.view_all", "releases.view_own") {
		return shared.Paginated[catalog.ReleaseNote]{}, shared.ErrForbidden
	}

	published, err := s.releaseRepo.FindPublished(ctx, filter)
	if err != nil {
		return shared.Paginated[catalog.ReleaseNote]{}, err
	}

	if actor.Has("releases.view_all") {
		return shared.NewPaginated(published, int64(len(published)), filter.Page, filter.PageSize), nil
	}

	visible := make([]catalog.ReleaseNote, 0, len(published))
	for _, note := range published {
		if note.VisibleToPartners() {
			visible = append(visible, note)
		}
	}
	return shared.NewPaginated(visible, int64(len(visible)), filter.Page, filter.PageSize), nil
}

// Get returns one note and, for partner users, records the view
// against the partner view cap
func (s *ReleaseService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalog.ReleaseNote, error) {
	note, err := s.releaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.HasAny("releases.manage", "releases.view_all") {
		if !note.IsPublished && !actor.Has("releases.manage") {
			return nil, shared.ErrNotFound
		}
		return note, nil
	}
	if !actor.Has("releases.view_own") {
		return nil, shared.ErrForbidden
	}

	if !note.RecordPartnerView() {
		return nil, shared.ErrNotFound
	}
	if err := s.releaseRepo.Save(ctx, note); err != nil {
		s.logger.Warn("Failed to persist partner view count",
			zap.String("release_id", note.ID.String()),
			zap.Error(err))
	}

	return note, nil
}

// Delete removes a release note
func (s *ReleaseService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require("releases.manage"); err != nil {
		return err
	}

	if _, err := s.releaseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.releaseRepo.Delete(ctx, id)
}
