package crm

import (
	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// ListClientsInput carries filters for the client listing
type ListClientsInput struct {
	Search string
	City   string
	Source string
	Filter shared.Filter
}

// CreateClientInput contains the input for client creation
type CreateClientInput struct {
	Name             string
	LastName         string
	Phone            string
	Email            string
	Telegram         string
	Instagram        string
	City             string
	Notes            string
	Source           crm.ClientSource
	CanAccessCatalog bool
}

// UpdateClientInput contains the updatable client fields.
// Nil pointers leave the corresponding field unchanged.
type UpdateClientInput struct {
	Name             *string
	LastName         *string
	Phone            *string
	Email            *string
	Telegram         *string
	Instagram        *string
	City             *string
	Notes            *string
	Source           *crm.ClientSource
	OwnerUserID      *uuid.UUID
	OwnerPartnerID   *uuid.UUID
	CanAccessCatalog *bool
}

// CreatePartnerInput contains the input for partner creation
type CreatePartnerInput struct {
	Name        string
	Type        crm.PartnerType
	ContactName string
	Phone       string
	Email       string
	Telegram    string
	Notes       string
}

// UpdatePartnerInput contains the updatable partner fields
type UpdatePartnerInput struct {
	ContactName      *string
	Phone            *string
	Email            *string
	Telegram         *string
	Status           *crm.PartnerStatus
	Notes            *string
	CanAccessCatalog *bool
}

// MarkupPolicyInput sets a partner's three markup percentages
type MarkupPolicyInput struct {
	AdminMarkup   valueobject.Percent
	DefaultMarkup valueobject.Percent
	MaxMarkup     valueobject.Percent
}
