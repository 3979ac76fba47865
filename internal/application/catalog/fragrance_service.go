package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// FragranceService manages the in-house fragrance catalog.
// Anyone with a catalog view key can read; writes need catalog.manage.
type FragranceService struct {
	fragranceRepo catalog.FragranceRepository
	logger        *zap.Logger
}

// NewFragranceService creates a new fragrance service
func NewFragranceService(fragranceRepo catalog.FragranceRepository, logger *zap.Logger) *FragranceService {
	return &FragranceService{
		fragranceRepo: fragranceRepo,
		logger:        logger,
	}
}

// List returns fragrances matching the input
func (s *FragranceService) List(ctx context.Context, actor identity.Actor, input ListFragrancesInput) (shared.Paginated[catalog.Fragrance], error) {
	if err := requireCatalogView(actor); err != nil {
		return shared.Paginated[catalog.Fragrance]{}, err
	}

	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if !input.IncludeArchived {
		filter.Filters["is_active"] = true
	}

	var (
		fragrances []catalog.Fragrance
		err        error
	)
	if input.Search != "" {
		fragrances, err = s.fragranceRepo.Search(ctx, input.Search, filter)
	} else {
		fragrances, err = s.fragranceRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return shared.Paginated[catalog.Fragrance]{}, err
	}

	total, err := s.fragranceRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[catalog.Fragrance]{}, err
	}

	return shared.NewPaginated(fragrances, total, filter.Page, filter.PageSize), nil
}

// Get returns a single fragrance
func (s *FragranceService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalog.Fragrance, error) {
	if err := requireCatalogView(actor); err != nil {
		return nil, err
	}
	return s.fragranceRepo.FindByID(ctx, id)
}

// Create adds a fragrance to the catalog
func (s *FragranceService) Create(ctx context.Context, actor identity.Actor, input CreateFragranceInput) (*catalog.Fragrance, error) {
	if err := actor.Require("catalog.manage"); err != nil {
		return nil, err
	}

	fragrance, err := catalog.NewFragrance(input.Brand, input.Name)
	if err != nil {
		return nil, err
	}
	if err := fragrance.SetPrices(normalizeRUB(input.BaseCost), normalizeRUB(input.RetailPrice)); err != nil {
		return nil, err
	}
	if input.Description != "" || input.VolumeML > 0 {
		if err := fragrance.SetDescription(input.Description, input.VolumeML); err != nil {
			return nil, err
		}
	}

	if err := s.fragranceRepo.Save(ctx, fragrance); err != nil {
		return nil, err
	}

	s.logger.Info("Fragrance created",
		zap.String("fragrance_id", fragrance.ID.String()),
		zap.String("name", fragrance.DisplayName()))

	return fragrance, nil
}

// Update applies partial changes to a fragrance
func (s *FragranceService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, input UpdateFragranceInput) (*catalog.Fragrance, error) {
	if err := actor.Require("catalog.manage"); err != nil {
		return nil, err
	}

	fragrance, err := s.fragranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Brand != nil {
		fragrance.Brand = *input.Brand
	}
	if input.Name != nil {
		fragrance.Name = *input.Name
	}
	if input.Description != nil || input.VolumeML != nil {
		description, volume := fragrance.Description, fragrance.VolumeML
		if input.Description != nil {
			description = *input.Description
		}
		if input.VolumeML != nil {
			volume = *input.VolumeML
		}
		if err := fragrance.SetDescription(description, volume); err != nil {
			return nil, err
		}
	}
	if input.BaseCost != nil || input.RetailPrice != nil {
		cost, retail := fragrance.BaseCost, fragrance.RetailPrice
		if input.BaseCost != nil {
			cost = *input.BaseCost
		}
		if input.RetailPrice != nil {
			retail = *input.RetailPrice
		}
		if err := fragrance.SetPrices(cost, retail); err != nil {
			return nil, err
		}
	}

	if err := s.fragranceRepo.Save(ctx, fragrance); err != nil {
		return nil, err
	}

	return fragrance, nil
}

// Archive hides a fragrance from the catalog
func (s *FragranceService) Archive(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	return s.setArchived(ctx, actor, id, true)
}

// Restore brings an archived fragrance back
func (s *FragranceService) Restore(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	return s.setArchived(ctx, actor, id, false)
}

func (s *FragranceService) setArchived(ctx context.Context, actor identity.Actor, id uuid.UUID, archived bool) error {
	if err := actor.Require("catalog.manage"); err != nil {
		return err
	}

	fragrance, err := s.fragranceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if archived {
		fragrance.Archive()
	} else {
		fragrance.Restore()
	}

	return s.fragranceRepo.Save(ctx, fragrance)
}

// Delete removes a fragrance entirely
func (s *FragranceService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require("catalog.manage"); err != nil {
		return err
	}

	if _, err := s.fragranceRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.fragranceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Fragrance deleted", zap.String("fragrance_id", id.String()))
	return nil
}

func requireCatalogView(actor identity.Actor) error {
	if actor.HasAny("catalog.view_all", "catalog.view_own", "catalog.manage") {
		return nil
	}
	return shared.ErrForbidden
}

// normalizeRUB turns a zero-value amount into an explicit RUB zero so
// that later arithmetic never mixes an empty currency in.
func normalizeRUB(m valueobject.Money) valueobject.Money {
	if m.Currency() == "" {
		return valueobject.ZeroRUB()
	}
	return m
}
