package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// ClientRepository defines persistence operations for clients.
// Scoped variants restrict results to rows visible under the given
// ownership scope.
type ClientRepository interface {
	shared.Repository[Client]
	FindAllScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) ([]Client, error)
	CountScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) (int64, error)
	FindByIDScoped(ctx context.Context, scope shared.OwnershipScope, id uuid.UUID) (*Client, error)
	SaveWithLock(ctx context.Context, client *Client, expectedVersion int) error
}

// PartnerRepository defines persistence operations for partners
type PartnerRepository interface {
	shared.Repository[Partner]
	FindByName(ctx context.Context, name string) (*Partner, error)
	SaveWithLock(ctx context.Context, partner *Partner, expectedVersion int) error
}

// PartnerClientMarkupRepository stores per-client markup overrides
type PartnerClientMarkupRepository interface {
	FindByPartnerAndClient(ctx context.Context, partnerID, clientID uuid.UUID) (*PartnerClientMarkup, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]PartnerClientMarkup, error)
	Save(ctx context.Context, markup *PartnerClientMarkup) error
	Delete(ctx context.Context, partnerID, clientID uuid.UUID) error
}
