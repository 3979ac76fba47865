package dto

import (
	"time"

	"github.com/google/uuid"

	appcrm "github.com/scentlab/crm-backend/internal/application/crm"
	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// CreatePartnerRequest is the partner creation payload
type CreatePartnerRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Telegram    string `json:"telegram"`
	Notes       string `json:"notes"`
}

// ToInput converts the request into an application input
func (r CreatePartnerRequest) ToInput() appcrm.CreatePartnerInput {
	return appcrm.CreatePartnerInput{
		Name:        r.Name,
		Type:        crm.PartnerType(r.Type),
		ContactName: r.ContactName,
		Phone:       r.Phone,
		Email:       r.Email,
		Telegram:    r.Telegram,
		Notes:       r.Notes,
	}
}

// UpdatePartnerRequest is the partial partner update payload
type UpdatePartnerRequest struct {
	ContactName      *string `json:"contact_name"`
	Phone            *string `json:"phone" binding:"omitempty,phone"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Telegram         *string `json:"telegram"`
	Status           *string `json:"status"`
	Notes            *string `json:"notes"`
	CanAccessCatalog *bool   `json:"can_access_catalog"`
}

// ToInput converts the request into an application input
func (r UpdatePartnerRequest) ToInput() appcrm.UpdatePartnerInput {
	input := appcrm.UpdatePartnerInput{
		ContactName:      r.ContactName,
		Phone:            r.Phone,
		Email:            r.Email,
		Telegram:         r.Telegram,
		Notes:            r.Notes,
		CanAccessCatalog: r.CanAccessCatalog,
	}
	if r.Status != nil {
		status := crm.PartnerStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// MarkupPolicyRequest sets a partner's three markup percentages
type MarkupPolicyRequest struct {
	AdminMarkup   float64 `json:"admin_markup"`
	DefaultMarkup float64 `json:"default_markup"`
	MaxMarkup     float64 `json:"max_markup"`
}

// ToInput converts the request into an application input
func (r MarkupPolicyRequest) ToInput() appcrm.MarkupPolicyInput {
	return appcrm.MarkupPolicyInput{
		AdminMarkup:   valueobject.NewPercentFromFloat(r.AdminMarkup),
		DefaultMarkup: valueobject.NewPercentFromFloat(r.DefaultMarkup),
		MaxMarkup:     valueobject.NewPercentFromFloat(r.MaxMarkup),
	}
}

// ClientMarkupRequest sets a per-client markup override
type ClientMarkupRequest struct {
	Markup float64 `json:"markup"`
}

// PartnerResponse is the API representation of a partner
type PartnerResponse struct {
	ID               uuid.UUID           `json:"id"`
	Name             string              `json:"name"`
	Type             string              `json:"type"`
	ContactName      string              `json:"contact_name,omitempty"`
	Phone            string              `json:"phone,omitempty"`
	Email            string              `json:"email,omitempty"`
	Telegram         string              `json:"telegram,omitempty"`
	Status           string              `json:"status"`
	AdminMarkup      valueobject.Percent `json:"admin_markup"`
	DefaultMarkup    valueobject.Percent `json:"default_markup"`
	MaxMarkup        valueobject.Percent `json:"max_markup"`
	CanAccessCatalog bool                `json:"can_access_catalog"`
	Notes            string              `json:"notes,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Version          int                 `json:"version"`
}

// NewPartnerResponse maps a domain partner
func NewPartnerResponse(p *crm.Partner) PartnerResponse {
	return PartnerResponse{
		ID:               p.ID,
		Name:             p.Name,
		Type:             string(p.Type),
		ContactName:      p.ContactName,
		Phone:            p.Phone,
		Email:            p.Email,
		Telegram:         p.Telegram,
		Status:           string(p.Status),
		AdminMarkup:      p.AdminMarkup,
		DefaultMarkup:    p.DefaultMarkup,
		MaxMarkup:        p.MaxMarkup,
		CanAccessCatalog: p.CanAccessCatalog,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}

// NewPartnerListResponse maps a slice of domain partners
func NewPartnerListResponse(partners []crm.Partner) []PartnerResponse {
	out := make([]PartnerResponse, 0, len(partners))
	for i := range partners {
		out = append(out, NewPartnerResponse(&partners[i]))
	}
	return out
}

// ClientMarkupResponse is a per-client markup override
type ClientMarkupResponse struct {
	PartnerID uuid.UUID           `json:"partner_id"`
	ClientID  uuid.UUID           `json:"client_id"`
	Markup    valueobject.Percent `json:"markup"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewClientMarkupResponse maps a domain markup override
func NewClientMarkupResponse(m *crm.PartnerClientMarkup) ClientMarkupResponse {
	return ClientMarkupResponse{
		PartnerID: m.PartnerID,
		ClientID:  m.ClientID,
		Markup:    m.Markup,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewClientMarkupListResponse maps a slice of markup overrides
func NewClientMarkupListResponse(markups []crm.PartnerClientMarkup) []ClientMarkupResponse {
	out := make([]ClientMarkupResponse, 0, len(markups))
	for i := range markups {
		out = append(out, NewClientMarkupResponse(&markups[i]))
	}
	return out
}
