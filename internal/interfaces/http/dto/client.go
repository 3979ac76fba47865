package dto

import (
	"time"

	"github.com/google/uuid"

	appcrm "github.com/scentlab/crm-backend/internal/application/crm"
	"github.com/scentlab/crm-backend/internal/domain/crm"
)

// ClientListRequest carries client listing query parameters
type ClientListRequest struct {
	ListRequest
	City   string `form:"city"`
	Source string `form:"source"`
}

// CreateClientRequest is the client creation payload
type CreateClientRequest struct {
	Name             string `json:"name" binding:"required"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone" binding:"omitempty,phone"`
	Email            string `json:"email" binding:"omitempty,email"`
	Telegram         string `json:"telegram"`
	Instagram        string `json:"instagram"`
	City             string `json:"city"`
	Notes            string `json:"notes"`
	Source           string `json:"source"`
	CanAccessCatalog bool   `json:"can_access_catalog"`
}

// ToInput converts the request into an application input
func (r CreateClientRequest) ToInput() appcrm.CreateClientInput {
	return appcrm.CreateClientInput{
		Name:             r.Name,
		LastName:         r.LastName,
		Phone:            r.Phone,
		Email:            r.Email,
		Telegram:         r.Telegram,
		Instagram:        r.Instagram,
		City:             r.City,
		Notes:            r.Notes,
		Source:           crm.ClientSource(r.Source),
		CanAccessCatalog: r.CanAccessCatalog,
	}
}

// UpdateClientRequest is the partial client update payload.
// Absent fields stay unchanged.
type UpdateClientRequest struct {
	Name             *string    `json:"name"`
	LastName         *string    `json:"last_name"`
	Phone            *string    `json:"phone" binding:"omitempty,phone"`
	Email            *string    `json:"email" binding:"omitempty,email"`
	Telegram         *string    `json:"telegram"`
	Instagram        *string    `json:"instagram"`
	City             *string    `json:"city"`
	Notes            *string    `json:"notes"`
	Source           *string    `json:"source"`
	OwnerUserID      *uuid.UUID `json:"owner_user_id"`
	OwnerPartnerID   *uuid.UUID `json:"owner_partner_id"`
	CanAccessCatalog *bool      `json:"can_access_catalog"`
}

// ToInput converts the request into an application input
func (r UpdateClientRequest) ToInput() appcrm.UpdateClientInput {
	input := appcrm.UpdateClientInput{
		Name:             r.Name,
		LastName:         r.LastName,
		Phone:            r.Phone,
		Email:            r.Email,
		Telegram:         r.Telegram,
		Instagram:        r.Instagram,
		City:             r.City,
		Notes:            r.Notes,
		OwnerUserID:      r.OwnerUserID,
		OwnerPartnerID:   r.OwnerPartnerID,
		CanAccessCatalog: r.CanAccessCatalog,
	}
	if r.Source != nil {
		source := crm.ClientSource(*r.Source)
		input.Source = &source
	}
	return input
}

// ClientResponse is the API representation of a client
type ClientResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	LastName         string     `json:"last_name,omitempty"`
	FullName         string     `json:"full_name"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	Telegram         string     `json:"telegram,omitempty"`
	Instagram        string     `json:"instagram,omitempty"`
	City             string     `json:"city,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Source           string     `json:"source"`
	OwnerUserID      *uuid.UUID `json:"owner_user_id,omitempty"`
	OwnerPartnerID   *uuid.UUID `json:"owner_partner_id,omitempty"`
	CanAccessCatalog bool       `json:"can_access_catalog"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Version          int        `json:"version"`
}

// NewClientResponse maps a domain client
func NewClientResponse(c *crm.Client) ClientResponse {
	return ClientResponse{
		ID:               c.ID,
		Name:             c.Name,
		LastName:         c.LastName,
		FullName:         c.FullName(),
		Phone:            c.Phone,
		Email:            c.Email,
		Telegram:         c.Telegram,
		Instagram:        c.Instagram,
		City:             c.City,
		Notes:            c.Notes,
		Source:           string(c.Source),
		OwnerUserID:      c.OwnerUserID,
		OwnerPartnerID:   c.OwnerPartnerID,
		CanAccessCatalog: c.CanAccessCatalog,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		Version:          c.Version,
	}
}

// NewClientListResponse maps a slice of domain clients
func NewClientListResponse(clients []crm.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, NewClientResponse(&clients[i]))
	}
	return out
}
