package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// Repository defines persistence operations for orders.
// Implementations load and store the full aggregate including items.
type Repository interface {
	shared.Repository[Order]
	FindAllScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) ([]Order, error)
	CountScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) (int64, error)
	FindByIDScoped(ctx context.Context, scope shared.OwnershipScope, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	SaveWithLock(ctx context.Context, order *Order, expectedVersion int) error
	NextNumber(ctx context.Context) (string, error)
}
