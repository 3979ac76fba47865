package crm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// PartnerService handles partner administration and markup policy
type PartnerService struct {
	partnerRepo crm.PartnerRepository
	markupRepo  crm.PartnerClientMarkupRepository
	logger      *zap.Logger
}

// NewPartnerService creates a new partner service
func NewPartnerService(
	partnerRepo crm.PartnerRepository,
	markupRepo crm.PartnerClientMarkupRepository,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		markupRepo:  markupRepo,
		logger:      logger,
	}
}

// List returns partners; requires partners.view_all
func (s *PartnerService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (shared.Paginated[crm.Partner], error) {
	if err := actor.Require("partners.view_all"); err != nil {
		return shared.Paginated[crm.Partner]{}, err
	}

	partners, err := s.partnerRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[crm.Partner]{}, err
	}
	total, err := s.partnerRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[crm.Partner]{}, err
	}

	return shared.NewPaginated(partners, total, filter.Page, filter.PageSize), nil
}

// Get returns a partner. Partner-bound users may read their own partner
// without the view_all key.
func (s *PartnerService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*crm.Partner, error) {
	if !actor.Has("partners.view_all") {
		if actor.PartnerID == nil || *actor.PartnerID != id {
			return nil, shared.ErrForbidden
		}
	}
	return s.partnerRepo.FindByID(ctx, id)
}

// Create creates a new partner
func (s *PartnerService) Create(ctx context.Context, actor identity.Actor, input CreatePartnerInput) (*crm.Partner, error) {
	if err := actor.Require("partners.create"); err != nil {
		return nil, err
	}

	if _, err := s.partnerRepo.FindByName(ctx, input.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Partner name is already taken")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	partner, err := crm.NewPartner(input.Name, input.Type)
	if err != nil {
		return nil, err
	}
	partner.SetContacts(input.ContactName, input.Phone, input.Email, input.Telegram)
	if input.Notes != "" {
		partner.SetNotes(input.Notes)
	}

	if err := s.partnerRepo.Save(ctx, partner); err != nil {
		return nil, err
	}

	s.logger.Info("Partner created",
		zap.String("partner_id", partner.ID.String()),
		zap.String("name", partner.Name))

	return partner, nil
}

// Update applies partial changes to a partner
func (s *PartnerService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, input UpdatePartnerInput) (*crm.Partner, error) {
	if err := actor.Require("partners.edit"); err != nil {
		return nil, err
	}

	partner, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expectedVersion := partner.Version

	if input.ContactName != nil || input.Phone != nil || input.Email != nil || input.Telegram != nil {
		contactName, phone, email, telegram := partner.ContactName, partner.Phone, partner.Email, partner.Telegram
		if input.ContactName != nil {
			contactName = *input.ContactName
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		if input.Email != nil {
			email = *input.Email
		}
		if input.Telegram != nil {
			telegram = *input.Telegram
		}
		partner.SetContacts(contactName, phone, email, telegram)
	}
	if input.Status != nil {
		if err := partner.ChangeStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		partner.SetNotes(*input.Notes)
	}
	if input.CanAccessCatalog != nil {
		partner.GrantCatalogAccess(*input.CanAccessCatalog)
	}

	if err := s.partnerRepo.SaveWithLock(ctx, partner, expectedVersion); err != nil {
		return nil, err
	}

	return partner, nil
}

// SetMarkupPolicy replaces the partner's markup percentages
func (s *PartnerService) SetMarkupPolicy(ctx context.Context, actor identity.Actor, id uuid.UUID, input MarkupPolicyInput) (*crm.Partner, error) {
	if err := actor.Require("partners.edit"); err != nil {
		return nil, err
	}

	partner, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expectedVersion := partner.Version

	if err := partner.SetMarkupPolicy(input.AdminMarkup, input.DefaultMarkup, input.MaxMarkup); err != nil {
		return nil, err
	}

	if err := s.partnerRepo.SaveWithLock(ctx, partner, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.Info("Partner markup policy updated",
		zap.String("partner_id", id.String()),
		zap.String("admin", input.AdminMarkup.String()),
		zap.String("default", input.DefaultMarkup.String()),
		zap.String("max", input.MaxMarkup.String()))

	return partner, nil
}

// SetClientMarkup creates or updates a per-client markup override
func (s *PartnerService) SetClientMarkup(ctx context.Context, actor identity.Actor, partnerID, clientID uuid.UUID, markup valueobject.Percent) (*crm.PartnerClientMarkup, error) {
	if err := actor.Require("partners.edit"); err != nil {
		return nil, err
	}
	if _, err := s.partnerRepo.FindByID(ctx, partnerID); err != nil {
		return nil, err
	}

	override, err := s.markupRepo.FindByPartnerAndClient(ctx, partnerID, clientID)
	switch {
	case err == nil:
		if err := override.SetMarkup(markup); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		override, err = crm.NewPartnerClientMarkup(partnerID, clientID, markup)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.markupRepo.Save(ctx, override); err != nil {
		return nil, err
	}

	s.logger.Info("Client markup override set",
		zap.String("partner_id", partnerID.String()),
		zap.String("client_id", clientID.String()),
		zap.String("markup", markup.String()))

	return override, nil
}

// RemoveClientMarkup drops a per-client markup override
func (s *PartnerService) RemoveClientMarkup(ctx context.Context, actor identity.Actor, partnerID, clientID uuid.UUID) error {
	if err := actor.Require("partners.edit"); err != nil {
		return err
	}

	if _, err := s.markupRepo.FindByPartnerAndClient(ctx, partnerID, clientID); err != nil {
		return err
	}

	return s.markupRepo.Delete(ctx, partnerID, clientID)
}

// ListClientMarkups returns all overrides for a partner
func (s *PartnerService) ListClientMarkups(ctx context.Context, actor identity.Actor, partnerID uuid.UUID) ([]crm.PartnerClientMarkup, error) {
	if !actor.Has("partners.view_all") {
		if actor.PartnerID == nil || *actor.PartnerID != partnerID {
			return nil, shared.ErrForbidden
		}
	}
	return s.markupRepo.FindByPartner(ctx, partnerID)
}

// Delete removes a partner
func (s *PartnerService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require("partners.delete"); err != nil {
		return err
	}

	if _, err := s.partnerRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.partnerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Partner deleted", zap.String("partner_id", id.String()))
	return nil
}
