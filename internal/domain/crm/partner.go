package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// PartnerStatus represents the working state of a partner
type PartnerStatus string

const (
	PartnerStatusActive  PartnerStatus = "active"
	PartnerStatusPaused  PartnerStatus = "paused"
	PartnerStatusBlocked PartnerStatus = "blocked"
)

// IsValid returns true for known statuses
func (s PartnerStatus) IsValid() bool {
	switch s {
	case PartnerStatusActive, PartnerStatusPaused, PartnerStatusBlocked:
		return true
	}
	return false
}

// PartnerType distinguishes reseller kinds
type PartnerType string

const (
	PartnerTypeReseller PartnerType = "reseller"
	PartnerTypeShop     PartnerType = "shop"
	PartnerTypeBlogger  PartnerType = "blogger"
)

// Partner is the aggregate root for a reseller account.
// The three markup percentages drive client price computation:
// AdminMarkup is added on top of the partner's own markup, which is the
// partner default unless a per-client override exists, capped at MaxMarkup
// and never below zero.
type Partner struct {
	shared.BaseAggregateRoot
	Name             string
	Type             PartnerType
	ContactName      string
	Phone            string
	Email            string
	Telegram         string
	Status           PartnerStatus
	AdminMarkup      valueobject.Percent
	DefaultMarkup    valueobject.Percent
	MaxMarkup        valueobject.Percent
	CanAccessCatalog bool
	Notes            string
}

// PartnerClientMarkup is a per-client override of the partner's default markup
type PartnerClientMarkup struct {
	ID        uuid.UUID
	PartnerID uuid.UUID
	ClientID  uuid.UUID
	Markup    valueobject.Percent
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPartner creates a new active partner
func NewPartner(name string, partnerType PartnerType) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot exceed 200 characters")
	}
	if partnerType == "" {
		partnerType = PartnerTypeReseller
	}

	return &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              partnerType,
		Status:            PartnerStatusActive,
		MaxMarkup:         valueobject.NewPercentFromFloat(100),
	}, nil
}

// SetContacts updates contact details
func (p *Partner) SetContacts(contactName, phone, email, telegram string) {
	p.ContactName = strings.TrimSpace(contactName)
	p.Phone = strings.TrimSpace(phone)
	p.Email = strings.ToLower(strings.TrimSpace(email))
	p.Telegram = strings.TrimPrefix(strings.TrimSpace(telegram), "@")
	p.Touch()
	p.IncrementVersion()
}

// SetNotes sets free-form notes
func (p *Partner) SetNotes(notes string) {
	p.Notes = notes
	p.Touch()
	p.IncrementVersion()
}

// ChangeStatus moves the partner to a new status
func (p *Partner) ChangeStatus(status PartnerStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown partner status")
	}

	p.Status = status
	p.Touch()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the partner can place orders
func (p *Partner) IsActive() bool {
	return p.Status == PartnerStatusActive
}

// SetMarkupPolicy updates the three markup percentages.
// The default markup must not exceed the maximum and no percentage
// may be negative.
func (p *Partner) SetMarkupPolicy(admin, def, max valueobject.Percent) error {
	if admin.IsNegative() || def.IsNegative() || max.IsNegative() {
		return shared.NewDomainError("INVALID_MARKUP", "Markup percent cannot be negative")
	}
	if def.Decimal().GreaterThan(max.Decimal()) {
		return shared.NewDomainError("INVALID_MARKUP", "Default markup cannot exceed the maximum markup")
	}

	p.AdminMarkup = admin
	p.DefaultMarkup = def
	p.MaxMarkup = max
	p.Touch()
	p.IncrementVersion()

	return nil
}

// GrantCatalogAccess toggles access to the shared catalog
func (p *Partner) GrantCatalogAccess(allowed bool) {
	p.CanAccessCatalog = allowed
	p.Touch()
	p.IncrementVersion()
}

// EffectiveMarkup resolves the partner's own markup for a client.
// A per-client override takes precedence over the default; the result is
// capped at MaxMarkup and floored at zero.
func (p *Partner) EffectiveMarkup(override *PartnerClientMarkup) valueobject.Percent {
	markup := p.DefaultMarkup
	if override != nil {
		markup = override.Markup
	}
	return markup.CapAt(p.MaxMarkup).FloorAtZero()
}

// TotalMarkup returns the full markup applied to a client price:
// the admin share plus the partner's effective share.
func (p *Partner) TotalMarkup(override *PartnerClientMarkup) valueobject.Percent {
	return p.AdminMarkup.Add(p.EffectiveMarkup(override))
}

// NewPartnerClientMarkup creates a per-client markup override
func NewPartnerClientMarkup(partnerID, clientID uuid.UUID, markup valueobject.Percent) (*PartnerClientMarkup, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER_ID", "Partner ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT_ID", "Client ID cannot be empty")
	}
	if markup.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MARKUP", "Markup percent cannot be negative")
	}

	now := time.Now()
	return &PartnerClientMarkup{
		ID:        uuid.New(),
		PartnerID: partnerID,
		ClientID:  clientID,
		Markup:    markup,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetMarkup updates the override value
func (m *PartnerClientMarkup) SetMarkup(markup valueobject.Percent) error {
	if markup.IsNegative() {
		return shared.NewDomainError("INVALID_MARKUP", "Markup percent cannot be negative")
	}

	m.Markup = markup
	m.UpdatedAt = time.Now()

	return nil
}
