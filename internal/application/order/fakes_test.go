package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*order.Order
	seq    int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
}

func copyOrder(o *order.Order) *order.Order {
	copied := *o
	copied.Items = append([]order.Item(nil), o.Items...)
	return &copied
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	if o, ok := r.orders[id]; ok {
		return copyOrder(o), nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	return r.FindAllScoped(ctx, shared.UnrestrictedScope(), filter)
}

func (r *fakeOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.CountScoped(ctx, shared.UnrestrictedScope(), filter)
}

func (r *fakeOrderRepo) FindAllScoped(_ context.Context, scope shared.OwnershipScope, filter shared.Filter) ([]order.Order, error) {
	out := make([]order.Order, 0)
	for _, o := range r.orders {
		if !o.IsVisibleTo(scope) {
			continue
		}
		if status, ok := filter.Filters["status"].(string); ok && string(o.Status) != status {
			continue
		}
		out = append(out, *copyOrder(o))
	}
	return out, nil
}

func (r *fakeOrderRepo) CountScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) (int64, error) {
	visible, err := r.FindAllScoped(ctx, scope, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(visible)), nil
}

func (r *fakeOrderRepo) FindByIDScoped(_ context.Context, scope shared.OwnershipScope, id uuid.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok || !o.IsVisibleTo(scope) {
		return nil, shared.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *fakeOrderRepo) FindByNumber(_ context.Context, number string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.Number == number {
			return copyOrder(o), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) SaveWithLock(_ context.Context, o *order.Order, expectedVersion int) error {
	stored, ok := r.orders[o.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *fakeOrderRepo) NextNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("ORD-%05d", r.seq), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*crm.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*crm.Client)}
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*crm.Client, error) {
	if c, ok := r.clients[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeClientRepo) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Client, error) {
	return r.FindAllScoped(ctx, shared.UnrestrictedScope(), filter)
}

func (r *fakeClientRepo) Save(_ context.Context, client *crm.Client) error {
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	all, _ := r.FindAll(ctx, filter)
	return int64(len(all)), nil
}

func (r *fakeClientRepo) FindAllScoped(_ context.Context, scope shared.OwnershipScope, _ shared.Filter) ([]crm.Client, error) {
	out := make([]crm.Client, 0)
	for _, c := range r.clients {
		if c.IsVisibleTo(scope) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) CountScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) (int64, error) {
	visible, err := r.FindAllScoped(ctx, scope, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(visible)), nil
}

func (r *fakeClientRepo) FindByIDScoped(_ context.Context, scope shared.OwnershipScope, id uuid.UUID) (*crm.Client, error) {
	c, ok := r.clients[id]
	if !ok || !c.IsVisibleTo(scope) {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientRepo) SaveWithLock(_ context.Context, client *crm.Client, expectedVersion int) error {
	stored, ok := r.clients[client.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

type fakeFragranceRepo struct {
	fragrances map[uuid.UUID]*catalog.Fragrance
}

func newFakeFragranceRepo() *fakeFragranceRepo {
	return &fakeFragranceRepo{fragrances: make(map[uuid.UUID]*catalog.Fragrance)}
}

func (r *fakeFragranceRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Fragrance, error) {
	if f, ok := r.fragrances[id]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeFragranceRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Fragrance, error) {
	out := make([]catalog.Fragrance, 0, len(r.fragrances))
	for _, f := range r.fragrances {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFragranceRepo) Save(_ context.Context, fragrance *catalog.Fragrance) error {
	copied := *fragrance
	r.fragrances[fragrance.ID] = &copied
	return nil
}

func (r *fakeFragranceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.fragrances, id)
	return nil
}

func (r *fakeFragranceRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.fragrances)), nil
}

func (r *fakeFragranceRepo) Search(ctx context.Context, _ string, filter shared.Filter) ([]catalog.Fragrance, error) {
	return r.FindAll(ctx, filter)
}

type fakePriceProductRepo struct {
	products map[uuid.UUID]*catalog.PriceProduct
}

func newFakePriceProductRepo() *fakePriceProductRepo {
	return &fakePriceProductRepo{products: make(map[uuid.UUID]*catalog.PriceProduct)}
}

func (r *fakePriceProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.PriceProduct, error) {
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePriceProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.PriceProduct, error) {
	out := make([]catalog.PriceProduct, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePriceProductRepo) Save(_ context.Context, product *catalog.PriceProduct) error {
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakePriceProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakePriceProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakePriceProductRepo) FindByExternalArticle(_ context.Context, article string) (*catalog.PriceProduct, error) {
	for _, p := range r.products {
		if p.ExternalArticle == article {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePriceProductRepo) Search(ctx context.Context, _ string, filter shared.Filter) ([]catalog.PriceProduct, error) {
	return r.FindAll(ctx, filter)
}

type fakeCatalogItemRepo struct {
	items map[uuid.UUID]*catalog.CatalogItem
}

func newFakeCatalogItemRepo() *fakeCatalogItemRepo {
	return &fakeCatalogItemRepo{items: make(map[uuid.UUID]*catalog.CatalogItem)}
}

func (r *fakeCatalogItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	if i, ok := r.items[id]; ok {
		copied := *i
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCatalogItemRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.CatalogItem, error) {
	out := make([]catalog.CatalogItem, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, nil
}

func (r *fakeCatalogItemRepo) Save(_ context.Context, item *catalog.CatalogItem) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeCatalogItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeCatalogItemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeCatalogItemRepo) FindVisible(_ context.Context, _ shared.Filter) ([]catalog.CatalogItem, error) {
	out := make([]catalog.CatalogItem, 0)
	for _, i := range r.items {
		if i.IsVisible {
			out = append(out, *i)
		}
	}
	return out, nil
}

type fakePartnerPriceRepo struct {
	prices map[string]*catalog.PartnerPrice
}

func newFakePartnerPriceRepo() *fakePartnerPriceRepo {
	return &fakePartnerPriceRepo{prices: make(map[string]*catalog.PartnerPrice)}
}

func (r *fakePartnerPriceRepo) FindByPartnerAndFragrance(_ context.Context, partnerID, fragranceID uuid.UUID) (*catalog.PartnerPrice, error) {
	if p, ok := r.prices[partnerID.String()+"/"+fragranceID.String()]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePartnerPriceRepo) FindByPartner(_ context.Context, partnerID uuid.UUID) ([]catalog.PartnerPrice, error) {
	out := make([]catalog.PartnerPrice, 0)
	for _, p := range r.prices {
		if p.PartnerID == partnerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePartnerPriceRepo) Save(_ context.Context, price *catalog.PartnerPrice) error {
	copied := *price
	r.prices[price.PartnerID.String()+"/"+price.FragranceID.String()] = &copied
	return nil
}

func (r *fakePartnerPriceRepo) Delete(_ context.Context, partnerID, fragranceID uuid.UUID) error {
	delete(r.prices, partnerID.String()+"/"+fragranceID.String())
	return nil
}

type fakePartnerRepo struct {
	partners map[uuid.UUID]*crm.Partner
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: make(map[uuid.UUID]*crm.Partner)}
}

func (r *fakePartnerRepo) FindByID(_ context.Context, id uuid.UUID) (*crm.Partner, error) {
	if p, ok := r.partners[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePartnerRepo) FindAll(_ context.Context, _ shared.Filter) ([]crm.Partner, error) {
	out := make([]crm.Partner, 0, len(r.partners))
	for _, p := range r.partners {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePartnerRepo) Save(_ context.Context, partner *crm.Partner) error {
	copied := *partner
	r.partners[partner.ID] = &copied
	return nil
}

func (r *fakePartnerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.partners, id)
	return nil
}

func (r *fakePartnerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.partners)), nil
}

func (r *fakePartnerRepo) FindByName(_ context.Context, name string) (*crm.Partner, error) {
	for _, p := range r.partners {
		if p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePartnerRepo) SaveWithLock(_ context.Context, partner *crm.Partner, expectedVersion int) error {
	stored, ok := r.partners[partner.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	copied := *partner
	r.partners[partner.ID] = &copied
	return nil
}

type fakeMarkupRepo struct {
	overrides map[string]*crm.PartnerClientMarkup
}

func newFakeMarkupRepo() *fakeMarkupRepo {
	return &fakeMarkupRepo{overrides: make(map[string]*crm.PartnerClientMarkup)}
}

func (r *fakeMarkupRepo) FindByPartnerAndClient(_ context.Context, partnerID, clientID uuid.UUID) (*crm.PartnerClientMarkup, error) {
	if m, ok := r.overrides[partnerID.String()+"/"+clientID.String()]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMarkupRepo) FindByPartner(_ context.Context, partnerID uuid.UUID) ([]crm.PartnerClientMarkup, error) {
	out := make([]crm.PartnerClientMarkup, 0)
	for _, m := range r.overrides {
		if m.PartnerID == partnerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMarkupRepo) Save(_ context.Context, markup *crm.PartnerClientMarkup) error {
	copied := *markup
	r.overrides[markup.PartnerID.String()+"/"+markup.ClientID.String()] = &copied
	return nil
}

func (r *fakeMarkupRepo) Delete(_ context.Context, partnerID, clientID uuid.UUID) error {
	delete(r.overrides, partnerID.String()+"/"+clientID.String())
	return nil
}
