package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// ClientService handles client operations.
// Reads are scoped by the actor's permissions: clients.view_all sees
// everything, clients.view_own only rows the actor owns directly or
// through their partner.
type ClientService struct {
	clientRepo crm.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo crm.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// List returns clients visible to the actor
func (s *ClientService) List(ctx context.Context, actor identity.Actor, input ListClientsInput) (shared.Paginated[crm.Client], error) {
	scope, err := actor.ScopeFor(identity.ResourceClients)
	if err != nil {
		return shared.Paginated[crm.Client]{}, err
	}

	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Search = input.Search
	if input.City != "" {
		filter.Filters["city"] = input.City
	}
	if input.Source != "" {
		filter.Filters["source"] = input.Source
	}

	clients, err := s.clientRepo.FindAllScoped(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[crm.Client]{}, err
	}
	total, err := s.clientRepo.CountScoped(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[crm.Client]{}, err
	}

	return shared.NewPaginated(clients, total, filter.Page, filter.PageSize), nil
}

// Get returns a single client if it is visible to the actor
func (s *ClientService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*crm.Client, error) {
	scope, err := actor.ScopeFor(identity.ResourceClients)
	if err != nil {
		return nil, err
	}
	return s.clientRepo.FindByIDScoped(ctx, scope, id)
}

// Create creates a client owned by the actor
func (s *ClientService) Create(ctx context.Context, actor identity.Actor, input CreateClientInput) (*crm.Client, error) {
	if err := actor.Require("clients.create"); err != nil {
		return nil, err
	}

	client, err := crm.NewClient(input.Name, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := applyClientContacts(client, input); err != nil {
		return nil, err
	}
	if input.Source != "" {
		client.SetSource(input.Source)
	}
	if actor.PartnerID != nil {
		if err := client.AssignToPartner(*actor.PartnerID); err != nil {
			return nil, err
		}
		client.SetSource(crm.SourcePartner)
	}
	if input.CanAccessCatalog {
		client.GrantCatalogAccess(true)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("created_by", actor.UserID.String()))

	return client, nil
}

// Update applies partial changes to a client the actor can see
func (s *ClientService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, input UpdateClientInput) (*crm.Client, error) {
	if err := actor.Require("clients.edit"); err != nil {
		return nil, err
	}
	scope, err := actor.ScopeFor(identity.ResourceClients)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByIDScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	expectedVersion := client.Version

	if input.Name != nil {
		if err := client.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.LastName != nil {
		if err := client.SetLastName(*input.LastName); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		if err := client.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := client.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Telegram != nil || input.Instagram != nil {
		telegram, instagram := client.Telegram, client.Instagram
		if input.Telegram != nil {
			telegram = *input.Telegram
		}
		if input.Instagram != nil {
			instagram = *input.Instagram
		}
		client.SetContacts(telegram, instagram)
	}
	if input.City != nil {
		client.SetCity(*input.City)
	}
	if input.Notes != nil {
		client.SetNotes(*input.Notes)
	}
	if input.Source != nil {
		client.SetSource(*input.Source)
	}
	if input.OwnerUserID != nil {
		if err := client.AssignToUser(*input.OwnerUserID); err != nil {
			return nil, err
		}
	}
	if input.OwnerPartnerID != nil {
		if err := client.AssignToPartner(*input.OwnerPartnerID); err != nil {
			return nil, err
		}
	}
	if input.CanAccessCatalog != nil {
		client.GrantCatalogAccess(*input.CanAccessCatalog)
	}

	if err := s.clientRepo.SaveWithLock(ctx, client, expectedVersion); err != nil {
		return nil, err
	}

	return client, nil
}

// Delete removes a client the actor can see
func (s *ClientService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require("clients.delete"); err != nil {
		return err
	}
	scope, err := actor.ScopeFor(identity.ResourceClients)
	if err != nil {
		return err
	}

	if _, err := s.clientRepo.FindByIDScoped(ctx, scope, id); err != nil {
		return err
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Client deleted", zap.String("client_id", id.String()))
	return nil
}

func applyClientContacts(client *crm.Client, input CreateClientInput) error {
	if input.LastName != "" {
		if err := client.SetLastName(input.LastName); err != nil {
			return err
		}
	}
	if input.Phone != "" {
		if err := client.SetPhone(input.Phone); err != nil {
			return err
		}
	}
	if input.Email != "" {
		if err := client.SetEmail(input.Email); err != nil {
			return err
		}
	}
	if input.Telegram != "" || input.Instagram != "" {
		client.SetContacts(input.Telegram, input.Instagram)
	}
	if input.City != "" {
		client.SetCity(input.City)
	}
	if input.Notes != "" {
		client.SetNotes(input.Notes)
	}
	return nil
}
