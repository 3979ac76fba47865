package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/domain/pricing"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// OrderService manages the order lifecycle. Lines are always priced
// server-side: the client sends product references and quantities, the
// service resolves base prices and applies the partner markup.
type OrderService struct {
	orderRepo     order.Repository
	clientRepo    crm.ClientRepository
	fragranceRepo catalog.FragranceRepository
	productRepo   catalog.PriceProductRepository
	itemRepo      catalog.CatalogItemRepository
	resolver      *appcatalog.PriceResolver
	logger        *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo order.Repository,
	clientRepo crm.ClientRepository,
	fragranceRepo catalog.FragranceRepository,
	productRepo catalog.PriceProductRepository,
	itemRepo catalog.CatalogItemRepository,
	resolver *appcatalog.PriceResolver,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		clientRepo:    clientRepo,
		fragranceRepo: fragranceRepo,
		productRepo:   productRepo,
		itemRepo:      itemRepo,
		resolver:      resolver,
		logger:        logger,
	}
}

// List returns orders visible to the actor
func (s *OrderService) List(ctx context.Context, actor identity.Actor, input ListOrdersInput) (shared.Paginated[order.Order], error) {
	scope, err := actor.ScopeFor(identity.ResourceOrders)
	if err != nil {
		return shared.Paginated[order.Order]{}, err
	}

	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Search = input.Search
	if input.Status != "" {
		filter.Filters["status"] = string(input.Status)
	}
	if input.ClientID != nil {
		filter.Filters["client_id"] = *input.ClientID
	}

	orders, err := s.orderRepo.FindAllScoped(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[order.Order]{}, err
	}
	total, err := s.orderRepo.CountScoped(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[order.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// Get returns a single order if it is visible to the actor
func (s *OrderService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*order.Order, error) {
	scope, err := actor.ScopeFor(identity.ResourceOrders)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByIDScoped(ctx, scope, id)
}

// Create creates an order with its lines priced in one pass.
// Partner-bound actors always order in their own partner context.
func (s *OrderService) Create(ctx context.Context, actor identity.Actor, input CreateOrderInput) (*order.Order, error) {
	if err := actor.Require("orders.create"); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must have at least one item")
	}

	clientScope, err := actor.ScopeFor(identity.ResourceClients)
	if err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.FindByIDScoped(ctx, clientScope, input.ClientID); err != nil {
		return nil, err
	}

	partnerID := input.PartnerID
	if actor.PartnerID != nil {
		partnerID = actor.PartnerID
	}

	clientID := input.ClientID
	markup, err := s.resolver.MarkupFor(ctx, partnerID, &clientID)
	if err != nil {
		return nil, err
	}

	number, err := s.orderRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(number, input.ClientID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if partnerID != nil {
		if err := o.BindToPartner(*partnerID); err != nil {
			return nil, err
		}
	}
	if input.PaymentMethod != "" {
		o.SetPayment(input.PaymentMethod)
	}
	if input.DeliveryType != "" || input.Tracking != "" {
		o.SetDelivery(input.DeliveryType, input.Tracking)
	}
	if input.Comment != "" {
		o.SetComment(input.Comment)
	}

	for _, itemInput := range input.Items {
		item, err := s.buildItem(ctx, itemInput, partnerID, markup)
		if err != nil {
			return nil, err
		}
		if err := o.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", o.ID.String()),
		zap.String("number", o.Number),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.TotalClientAmount.String()))

	return o, nil
}

// buildItem resolves the product reference, prices the line in the
// partner context and constructs the domain item
func (s *OrderService) buildItem(ctx context.Context, input OrderItemInput, partnerID *uuid.UUID, markup valueobject.Percent) (*order.Item, error) {
	source := order.ItemSource{
		FragranceID:    input.FragranceID,
		PriceProductID: input.PriceProductID,
		CatalogItemID:  input.CatalogItemID,
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}

	name, base, err := s.resolveSource(ctx, source, partnerID)
	if err != nil {
		return nil, err
	}

	discount := input.Discount
	if discount.Currency() == "" {
		discount = valueobject.ZeroRUB()
	}

	quote, err := pricing.QuoteLine(base, markup, input.Quantity, discount)
	if err != nil {
		return nil, err
	}

	return order.NewItem(source, name, input.Quantity, quote.UnitClientPrice, quote.UnitCost, discount)
}

// resolveSource loads the referenced product and returns its display
// name and base price. Catalog items price through their linked
// price-list product.
func (s *OrderService) resolveSource(ctx context.Context, source order.ItemSource, partnerID *uuid.UUID) (string, pricing.BasePrice, error) {
	switch source.Kind() {
	case order.SourceFragrance:
		fragrance, err := s.fragranceRepo.FindByID(ctx, *source.FragranceID)
		if err != nil {
			return "", pricing.BasePrice{}, err
		}
		base, err := s.resolver.FragranceBase(ctx, fragrance, partnerID)
		if err != nil {
			return "", pricing.BasePrice{}, err
		}
		return fragrance.DisplayName(), base, nil

	case order.SourcePriceProduct:
		product, err := s.productRepo.FindByID(ctx, *source.PriceProductID)
		if err != nil {
			return "", pricing.BasePrice{}, err
		}
		return product.DisplayName(), s.resolver.PriceProductBase(product, partnerID != nil), nil

	default:
		item, err := s.itemRepo.FindByID(ctx, *source.CatalogItemID)
		if err != nil {
			return "", pricing.BasePrice{}, err
		}
		if !item.HasPriceSource() {
			return "", pricing.BasePrice{}, shared.NewDomainError("INVALID_STATE", "Catalog item has no linked price product")
		}
		product, err := s.productRepo.FindByID(ctx, *item.PriceProductID)
		if err != nil {
			return "", pricing.BasePrice{}, err
		}
		return item.DisplayName(), s.resolver.PriceProductBase(product, partnerID != nil), nil
	}
}

// AddItem appends a priced line to an editable order
func (s *OrderService) AddItem(ctx context.Context, actor identity.Actor, orderID uuid.UUID, input OrderItemInput) (*order.Order, error) {
	o, expectedVersion, err := s.loadForEdit(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	markup, err := s.resolver.MarkupFor(ctx, o.PartnerID, &o.ClientID)
	if err != nil {
		return nil, err
	}
	item, err := s.buildItem(ctx, input, o.PartnerID, markup)
	if err != nil {
		return nil, err
	}
	if err := o.AddItem(item); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o, expectedVersion); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateItem changes quantity and discount of a line
func (s *OrderService) UpdateItem(ctx context.Context, actor identity.Actor, orderID, itemID uuid.UUID, input UpdateItemInput) (*order.Order, error) {
	o, expectedVersion, err := s.loadForEdit(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	discount := input.Discount
	if discount.Currency() == "" {
		discount = valueobject.ZeroRUB()
	}
	if err := o.UpdateItem(itemID, input.Quantity, discount); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o, expectedVersion); err != nil {
		return nil, err
	}
	return o, nil
}

// RemoveItem deletes a line from an editable order
func (s *OrderService) RemoveItem(ctx context.Context, actor identity.Actor, orderID, itemID uuid.UUID) (*order.Order, error) {
	o, expectedVersion, err := s.loadForEdit(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o, expectedVersion); err != nil {
		return nil, err
	}
	return o, nil
}

// Update applies partial header changes
func (s *OrderService) Update(ctx context.Context, actor identity.Actor, orderID uuid.UUID, input UpdateOrderInput) (*order.Order, error) {
	o, expectedVersion, err := s.loadForEdit(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if input.PaymentMethod != nil {
		o.SetPayment(*input.PaymentMethod)
	}
	if input.DeliveryType != nil || input.Tracking != nil {
		deliveryType, tracking := o.DeliveryType, o.DeliveryTracking
		if input.DeliveryType != nil {
			deliveryType = *input.DeliveryType
		}
		if input.Tracking != nil {
			tracking = *input.Tracking
		}
		o.SetDelivery(deliveryType, tracking)
	}
	if input.Comment != nil {
		o.SetComment(*input.Comment)
	}

	if err := s.orderRepo.SaveWithLock(ctx, o, expectedVersion); err != nil {
		return nil, err
	}
	return o, nil
}

// ChangeStatus moves an order through the fulfilment flow
func (s *OrderService) ChangeStatus(ctx context.Context, actor identity.Actor, orderID uuid.UUID, target order.Status) (*order.Order, error) {
	o, expectedVersion, err := s.loadForEdit(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.ChangeStatus(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)))

	return o, nil
}

// Delete removes an order the actor can see
func (s *OrderService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require("orders.delete"); err != nil {
		return err
	}
	scope, err := actor.ScopeFor(identity.ResourceOrders)
	if err != nil {
		return err
	}

	if _, err := s.orderRepo.FindByIDScoped(ctx, scope, id); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

// loadForEdit authorizes the edit and loads the order inside the
// actor's scope, returning the version to lock the save on
func (s *OrderService) loadForEdit(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*order.Order, int, error) {
	if err := actor.Require("orders.edit"); err != nil {
		return nil, 0, err
	}
	scope, err := actor.ScopeFor(identity.ResourceOrders)
	if err != nil {
		return nil, 0, err
	}

	o, err := s.orderRepo.FindByIDScoped(ctx, scope, orderID)
	if err != nil {
		return nil, 0, err
	}
	return o, o.Version, nil
}
