package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// ReleaseNote announces catalog or system changes.
// Publication to partners can be limited to the first N partner views.
type ReleaseNote struct {
	shared.BaseAggregateRoot
	Version               string
	Title                 string
	Description           string
	Changes               string
	IsPublished           bool
	IsPublishedToPartners bool
	MaxPartnerViews       *int
	PartnerViewCount      int
	CreatedByUserID       *uuid.UUID
}

// NewReleaseNote creates an unpublished release note
func NewReleaseNote(version, title string, createdBy uuid.UUID) (*ReleaseNote, error) {
	version = strings.TrimSpace(version)
	title = strings.TrimSpace(title)
	if version == "" {
		return nil, shared.NewDomainError("INVALID_VERSION", "Release version cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Release title cannot be empty")
	}

	creator := createdBy
	return &ReleaseNote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Version:           version,
		Title:             title,
		CreatedByUserID:   &creator,
	}, nil
}

// SetContent updates the body of the note
func (r *ReleaseNote) SetContent(description, changes string) {
	r.Description = description
	r.Changes = changes
	r.Touch()
	r.IncrementVersion()
}

// Publish makes the note visible to internal users
func (r *ReleaseNote) Publish() error {
	if r.IsPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Release note is already published")
	}

	r.IsPublished = true
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Unpublish hides the note again
func (r *ReleaseNote) Unpublish() {
	r.IsPublished = false
	r.IsPublishedToPartners = false
	r.Touch()
	r.IncrementVersion()
}

// PublishToPartners additionally exposes the note to partner users.
// A nil maxViews means unlimited partner views.
func (r *ReleaseNote) PublishToPartners(maxViews *int) error {
	if !r.IsPublished {
		return shared.NewDomainError("NOT_PUBLISHED", "Publish the release note before exposing it to partners")
	}
	if maxViews != nil && *maxViews <= 0 {
		return shared.NewDomainError("INVALID_MAX_VIEWS", "Max partner views must be positive")
	}

	r.IsPublishedToPartners = true
	r.MaxPartnerViews = maxViews
	r.Touch()
	r.IncrementVersion()

	return nil
}

// RecordPartnerView counts a partner view.
// Returns false when the view cap has been exhausted.
func (r *ReleaseNote) RecordPartnerView() bool {
	if !r.VisibleToPartners() {
		return false
	}

	r.PartnerViewCount++
	r.Touch()

	return true
}

// VisibleToPartners reports whether partner users may still see the note
func (r *ReleaseNote) VisibleToPartners() bool {
	if !r.IsPublished || !r.IsPublishedToPartners {
		return false
	}
	if r.MaxPartnerViews != nil && r.PartnerViewCount >= *r.MaxPartnerViews {
		return false
	}
	return true
}
