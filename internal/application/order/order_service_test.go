package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

func actorWith(keys ...string) identity.Actor {
	return identity.Actor{UserID: uuid.New(), Permissions: keys}
}

func rub(v float64) valueobject.Money {
	return valueobject.NewMoneyRUBFromFloat(v)
}

type orderFixture struct {
	svc         *OrderService
	orderRepo   *fakeOrderRepo
	clientRepo  *fakeClientRepo
	itemRepo    *fakeCatalogItemRepo
	partnerRepo *fakePartnerRepo
	fragrance   *catalog.Fragrance
	product     *catalog.PriceProduct
	catalogItem *catalog.CatalogItem
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()

	orderRepo := newFakeOrderRepo()
	clientRepo := newFakeClientRepo()
	fragranceRepo := newFakeFragranceRepo()
	productRepo := newFakePriceProductRepo()
	itemRepo := newFakeCatalogItemRepo()
	partnerPriceRepo := newFakePartnerPriceRepo()
	partnerRepo := newFakePartnerRepo()
	markupRepo := newFakeMarkupRepo()

	fragrance, err := catalog.NewFragrance("Maison Noir", "Oud Intense")
	require.NoError(t, err)
	require.NoError(t, fragrance.SetPrices(rub(1000), rub(2000)))
	require.NoError(t, fragranceRepo.Save(ctx, fragrance))

	product, err := catalog.NewPriceProduct("ART-1", "Dior", "Sauvage")
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(rub(4000), rub(5000)))
	require.NoError(t, productRepo.Save(ctx, product))

	item, err := catalog.NewCatalogItem("Dior", "Sauvage Intense")
	require.NoError(t, err)
	require.NoError(t, item.LinkPriceProduct(product.ID))
	require.NoError(t, itemRepo.Save(ctx, item))

	resolver := appcatalog.NewPriceResolver(partnerPriceRepo, partnerRepo, markupRepo)
	svc := NewOrderService(orderRepo, clientRepo, fragranceRepo, productRepo, itemRepo, resolver, zap.NewNop())

	return &orderFixture{
		svc:         svc,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		itemRepo:    itemRepo,
		partnerRepo: partnerRepo,
		fragrance:   fragrance,
		product:     product,
		catalogItem: item,
	}
}

func (f *orderFixture) seedClient(t *testing.T, owner identity.Actor) *crm.Client {
	t.Helper()
	client, err := crm.NewClient("Anna", owner.UserID)
	require.NoError(t, err)
	if owner.PartnerID != nil {
		require.NoError(t, client.AssignToPartner(*owner.PartnerID))
	}
	require.NoError(t, f.clientRepo.Save(context.Background(), client))
	return client
}

func managerKeys() []string {
	return []string{"orders.create", "orders.edit", "orders.delete", "orders.view_all", "clients.view_all"}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	manager := actorWith(managerKeys()...)
	client := f.seedClient(t, manager)

	created, err := f.svc.Create(ctx, manager, CreateOrderInput{
		ClientID: client.ID,
		Items: []OrderItemInput{
			{FragranceID: &f.fragrance.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-00001", created.Number)
	assert.Equal(t, order.StatusNew, created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "Maison Noir Oud Intense", created.Items[0].Name)
	assert.True(t, created.TotalClientAmount.Equals(rub(4000)))
	assert.True(t, created.TotalCostAmount.Equals(rub(2000)))
	assert.True(t, created.TotalMargin.Equals(rub(2000)))

	t.Run("empty order is rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, manager, CreateOrderInput{ClientID: client.ID})
		assert.EqualError(t, err, "Order must have at least one item")
	})

	t.Run("line discount reduces totals", func(t *testing.T) {
		discounted, err := f.svc.Create(ctx, manager, CreateOrderInput{
			ClientID: client.ID,
			Items: []OrderItemInput{
				{FragranceID: &f.fragrance.ID, Quantity: 2, Discount: rub(500)},
			},
		})
		require.NoError(t, err)
		assert.True(t, discounted.TotalClientAmount.Equals(rub(3500)))
		assert.True(t, discounted.TotalMargin.Equals(rub(1500)))
	})

	t.Run("discount above the line is rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, manager, CreateOrderInput{
			ClientID: client.ID,
			Items: []OrderItemInput{
				{FragranceID: &f.fragrance.ID, Quantity: 1, Discount: rub(9000)},
			},
		})
		assert.EqualError(t, err, "Discount cannot exceed the line amount")
	})

	t.Run("two product references on one line are rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, manager, CreateOrderInput{
			ClientID: client.ID,
			Items: []OrderItemInput{
				{FragranceID: &f.fragrance.ID, PriceProductID: &f.product.ID, Quantity: 1},
			},
		})
		assert.EqualError(t, err, "Order item must reference exactly one product")
	})

	t.Run("unknown client is rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, manager, CreateOrderInput{
			ClientID: uuid.New(),
			Items:    []OrderItemInput{{FragranceID: &f.fragrance.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_CreatePartnerContext(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	partner, err := crm.NewPartner("Reseller", crm.PartnerTypeReseller)
	require.NoError(t, err)
	require.NoError(t, partner.SetMarkupPolicy(
		valueobject.NewPercentFromFloat(10),
		valueobject.NewPercentFromFloat(20),
		valueobject.NewPercentFromFloat(100),
	))
	require.NoError(t, f.partnerRepo.Save(ctx, partner))

	actor := identity.Actor{
		UserID:      uuid.New(),
		PartnerID:   &partner.ID,
		Permissions: []string{"orders.create", "orders.view_own", "clients.view_own"},
	}
	client := f.seedClient(t, actor)

	created, err := f.svc.Create(ctx, actor, CreateOrderInput{
		ClientID: client.ID,
		Items: []OrderItemInput{
			{FragranceID: &f.fragrance.ID, Quantity: 1},
			{CatalogItemID: &f.catalogItem.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created.PartnerID)
	assert.Equal(t, partner.ID, *created.PartnerID)
	require.Len(t, created.Items, 2)

	// fragrance: 2000 plus 30 percent markup, cost stays at base
	assert.True(t, created.Items[0].UnitClientPrice.Equals(rub(2600)))
	assert.True(t, created.Items[0].LineMargin.Equals(rub(1600)))
	// catalog item prices through the linked product at the partner price
	assert.True(t, created.Items[1].UnitClientPrice.Equals(rub(6500)))
	assert.True(t, created.Items[1].LineMargin.Equals(rub(1500)))

	assert.True(t, created.TotalClientAmount.Equals(rub(9100)))

	t.Run("catalog item without price source fails", func(t *testing.T) {
		unlinked, err := catalog.NewCatalogItem("Kilian", "Angels Share")
		require.NoError(t, err)
		require.NoError(t, f.itemRepo.Save(ctx, unlinked))

		_, err = f.svc.Create(ctx, actor, CreateOrderInput{
			ClientID: client.ID,
			Items:    []OrderItemInput{{CatalogItemID: &unlinked.ID, Quantity: 1}},
		})
		assert.EqualError(t, err, "Catalog item has no linked price product")
	})
}

func TestOrderService_EditLines(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	manager := actorWith(managerKeys()...)
	client := f.seedClient(t, manager)

	created, err := f.svc.Create(ctx, manager, CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{FragranceID: &f.fragrance.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, created.TotalClientAmount.Equals(rub(2000)))

	withProduct, err := f.svc.AddItem(ctx, manager, created.ID, OrderItemInput{
		PriceProductID: &f.product.ID,
		Quantity:       1,
	})
	require.NoError(t, err)
	require.Len(t, withProduct.Items, 2)
	// internal sale: partner price is the client base, purchase price the cost
	assert.True(t, withProduct.TotalClientAmount.Equals(rub(7000)))
	assert.True(t, withProduct.TotalCostAmount.Equals(rub(5000)))

	t.Run("quantity change reprices the line", func(t *testing.T) {
		updated, err := f.svc.UpdateItem(ctx, manager, created.ID, withProduct.Items[0].ID, UpdateItemInput{Quantity: 3})
		require.NoError(t, err)
		assert.True(t, updated.TotalClientAmount.Equals(rub(11000)))
	})

	t.Run("removing a line recomputes totals", func(t *testing.T) {
		updated, err := f.svc.RemoveItem(ctx, manager, created.ID, withProduct.Items[1].ID)
		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.True(t, updated.TotalClientAmount.Equals(rub(6000)))
	})

	t.Run("unknown line is not found", func(t *testing.T) {
		_, err := f.svc.RemoveItem(ctx, manager, created.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lines are frozen after payment", func(t *testing.T) {
		_, err := f.svc.ChangeStatus(ctx, manager, created.ID, order.StatusPaid)
		require.NoError(t, err)

		_, err = f.svc.AddItem(ctx, manager, created.ID, OrderItemInput{
			FragranceID: &f.fragrance.ID,
			Quantity:    1,
		})
		assert.EqualError(t, err, "Order lines cannot be changed in status PAID")
	})
}

func TestOrderService_StatusFlow(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	manager := actorWith(managerKeys()...)
	client := f.seedClient(t, manager)

	created, err := f.svc.Create(ctx, manager, CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{FragranceID: &f.fragrance.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	t.Run("skipping ahead is rejected", func(t *testing.T) {
		_, err := f.svc.ChangeStatus(ctx, manager, created.ID, order.StatusShipped)
		assert.EqualError(t, err, "Cannot move order from NEW to SHIPPED")
	})

	for _, next := range []order.Status{
		order.StatusWaitingPayment,
		order.StatusPaid,
		order.StatusPacking,
		order.StatusShipped,
		order.StatusDelivered,
	} {
		_, err := f.svc.ChangeStatus(ctx, manager, created.ID, next)
		require.NoError(t, err, "transition to %s", next)
	}

	t.Run("delivered orders can only be returned", func(t *testing.T) {
		_, err := f.svc.ChangeStatus(ctx, manager, created.ID, order.StatusCancelled)
		assert.EqualError(t, err, "Cannot move order from DELIVERED to CANCELLED")

		updated, err := f.svc.ChangeStatus(ctx, manager, created.ID, order.StatusReturned)
		require.NoError(t, err)
		assert.Equal(t, order.StatusReturned, updated.Status)
	})
}

func TestOrderService_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	owner := actorWith("orders.create", "orders.view_own", "clients.view_own")
	other := actorWith("orders.create", "orders.view_own", "clients.view_own")
	admin := actorWith("orders.view_all")

	mine, err := f.svc.Create(ctx, owner, CreateOrderInput{
		ClientID: f.seedClient(t, owner).ID,
		Items:    []OrderItemInput{{FragranceID: &f.fragrance.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	foreign, err := f.svc.Create(ctx, other, CreateOrderInput{
		ClientID: f.seedClient(t, other).ID,
		Items:    []OrderItemInput{{FragranceID: &f.fragrance.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	t.Run("view_own lists only own orders", func(t *testing.T) {
		page, err := f.svc.List(ctx, owner, ListOrdersInput{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, mine.ID, page.Items[0].ID)
	})

	t.Run("view_all sees everything", func(t *testing.T) {
		page, err := f.svc.List(ctx, admin, ListOrdersInput{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})

	t.Run("status filter applies", func(t *testing.T) {
		page, err := f.svc.List(ctx, admin, ListOrdersInput{Status: order.StatusPaid, Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("foreign order reads as not found", func(t *testing.T) {
		_, err := f.svc.Get(ctx, owner, foreign.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("no view key at all is forbidden", func(t *testing.T) {
		_, err := f.svc.List(ctx, actorWith(), ListOrdersInput{Filter: shared.DefaultFilter()})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestOrderService_HeaderUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	manager := actorWith(managerKeys()...)
	client := f.seedClient(t, manager)

	created, err := f.svc.Create(ctx, manager, CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{FragranceID: &f.fragrance.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	method := order.PaymentCard
	delivery := order.DeliveryCDEK
	tracking := "CDEK-123456"
	updated, err := f.svc.Update(ctx, manager, created.ID, UpdateOrderInput{
		PaymentMethod: &method,
		DeliveryType:  &delivery,
		Tracking:      &tracking,
	})
	require.NoError(t, err)
	assert.Equal(t, order.PaymentCard, updated.PaymentMethod)
	assert.Equal(t, "CDEK-123456", updated.DeliveryTracking)

	require.NoError(t, f.svc.Delete(ctx, manager, created.ID))
	_, err = f.svc.Get(ctx, manager, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
