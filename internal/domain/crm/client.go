package crm

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// ClientSource describes where a client came from
type ClientSource string

const (
	SourceManual    ClientSource = "manual"
	SourceInstagram ClientSource = "instagram"
	SourceTelegram  ClientSource = "telegram"
	SourceReferral  ClientSource = "referral"
	SourcePartner   ClientSource = "partner"
)

// Client is the aggregate root for a retail customer.
// Ownership fields drive row visibility: users holding only view_own see
// clients they own directly or through their partner.
type Client struct {
	shared.BaseAggregateRoot
	Name             string
	LastName         string
	Phone            string
	Email            string
	Telegram         string
	Instagram        string
	City             string
	Notes            string
	Source           ClientSource
	OwnerUserID      *uuid.UUID
	OwnerPartnerID   *uuid.UUID
	CreatedByUserID  *uuid.UUID
	CanAccessCatalog bool
}

// NewClient creates a new client with required fields
func NewClient(name string, createdBy uuid.UUID) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}

	createdByID := createdBy
	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Source:            SourceManual,
		OwnerUserID:       &createdByID,
		CreatedByUserID:   &createdByID,
	}, nil
}

// Rename changes the client's first name
func (c *Client) Rename(name string) error {
	if err := validateClientName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetLastName sets the client's last name
func (c *Client) SetLastName(lastName string) error {
	if len(lastName) > 200 {
		return shared.NewDomainError("INVALID_LAST_NAME", "Last name cannot exceed 200 characters")
	}

	c.LastName = strings.TrimSpace(lastName)
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetPhone sets the client's phone number
func (c *Client) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}

	c.Phone = phone
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetEmail sets the client's email
func (c *Client) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	c.Email = email
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetContacts sets the messenger handles
func (c *Client) SetContacts(telegram, instagram string) {
	c.Telegram = strings.TrimPrefix(strings.TrimSpace(telegram), "@")
	c.Instagram = strings.TrimPrefix(strings.TrimSpace(instagram), "@")
	c.Touch()
	c.IncrementVersion()
}

// SetCity sets the client's city
func (c *Client) SetCity(city string) {
	c.City = strings.TrimSpace(city)
	c.Touch()
	c.IncrementVersion()
}

// SetNotes sets free-form notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()
}

// SetSource records where the client came from
func (c *Client) SetSource(source ClientSource) {
	c.Source = source
	c.Touch()
	c.IncrementVersion()
}

// AssignToUser transfers ownership to another user
func (c *Client) AssignToUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	c.OwnerUserID = &userID
	c.Touch()
	c.IncrementVersion()

	return nil
}

// AssignToPartner links the client to a partner
func (c *Client) AssignToPartner(partnerID uuid.UUID) error {
	if partnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARTNER_ID", "Partner ID cannot be empty")
	}

	c.OwnerPartnerID = &partnerID
	c.Touch()
	c.IncrementVersion()

	return nil
}

// GrantCatalogAccess toggles access to the shared catalog
func (c *Client) GrantCatalogAccess(allowed bool) {
	c.CanAccessCatalog = allowed
	c.Touch()
	c.IncrementVersion()
}

// IsVisibleTo reports whether the client falls inside the given ownership scope
func (c *Client) IsVisibleTo(scope shared.OwnershipScope) bool {
	if scope.All {
		return true
	}
	if c.OwnerUserID != nil && *c.OwnerUserID == scope.UserID {
		return true
	}
	if c.CreatedByUserID != nil && *c.CreatedByUserID == scope.UserID {
		return true
	}
	if scope.PartnerID != nil && c.OwnerPartnerID != nil && *c.OwnerPartnerID == *scope.PartnerID {
		return true
	}
	return false
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.Name
	}
	return c.Name + " " + c.LastName
}

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{5,30}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}
