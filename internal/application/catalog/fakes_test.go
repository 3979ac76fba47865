package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

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

func (r *fakeFragranceRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Fragrance, error) {
	out := make([]catalog.Fragrance, 0)
	for _, f := range r.fragrances {
		if onlyActive(filter) && !f.IsActive {
			continue
		}
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

func (r *fakeFragranceRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	all, _ := r.FindAll(ctx, filter)
	return int64(len(all)), nil
}

func (r *fakeFragranceRepo) Search(ctx context.Context, query string, filter shared.Filter) ([]catalog.Fragrance, error) {
	all, _ := r.FindAll(ctx, filter)
	out := make([]catalog.Fragrance, 0)
	for _, f := range all {
		if containsFold(f.DisplayName(), query) {
			out = append(out, f)
		}
	}
	return out, nil
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

func (r *fakePriceProductRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.PriceProduct, error) {
	out := make([]catalog.PriceProduct, 0)
	for _, p := range r.products {
		if onlyActive(filter) && !p.IsActive {
			continue
		}
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

func (r *fakePriceProductRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	all, _ := r.FindAll(ctx, filter)
	return int64(len(all)), nil
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

func (r *fakePriceProductRepo) Search(ctx context.Context, query string, filter shared.Filter) ([]catalog.PriceProduct, error) {
	all, _ := r.FindAll(ctx, filter)
	out := make([]catalog.PriceProduct, 0)
	for _, p := range all {
		if containsFold(p.DisplayName(), query) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePriceImportRepo struct {
	imports map[uuid.UUID]*catalog.PriceImport
}

func newFakePriceImportRepo() *fakePriceImportRepo {
	return &fakePriceImportRepo{imports: make(map[uuid.UUID]*catalog.PriceImport)}
}

func (r *fakePriceImportRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.PriceImport, error) {
	if p, ok := r.imports[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePriceImportRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.PriceImport, error) {
	out := make([]catalog.PriceImport, 0, len(r.imports))
	for _, p := range r.imports {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePriceImportRepo) Save(_ context.Context, imp *catalog.PriceImport) error {
	copied := *imp
	r.imports[imp.ID] = &copied
	return nil
}

func (r *fakePriceImportRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.imports, id)
	return nil
}

func (r *fakePriceImportRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.imports)), nil
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

func partnerPriceKey(partnerID, fragranceID uuid.UUID) string {
	return partnerID.String() + "/" + fragranceID.String()
}

func (r *fakePartnerPriceRepo) FindByPartnerAndFragrance(_ context.Context, partnerID, fragranceID uuid.UUID) (*catalog.PartnerPrice, error) {
	if p, ok := r.prices[partnerPriceKey(partnerID, fragranceID)]; ok {
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
	r.prices[partnerPriceKey(price.PartnerID, price.FragranceID)] = &copied
	return nil
}

func (r *fakePartnerPriceRepo) Delete(_ context.Context, partnerID, fragranceID uuid.UUID) error {
	delete(r.prices, partnerPriceKey(partnerID, fragranceID))
	return nil
}

type fakeReleaseRepo struct {
	notes map[uuid.UUID]*catalog.ReleaseNote
}

func newFakeReleaseRepo() *fakeReleaseRepo {
	return &fakeReleaseRepo{notes: make(map[uuid.UUID]*catalog.ReleaseNote)}
}

func (r *fakeReleaseRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.ReleaseNote, error) {
	if n, ok := r.notes[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReleaseRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.ReleaseNote, error) {
	out := make([]catalog.ReleaseNote, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeReleaseRepo) Save(_ context.Context, note *catalog.ReleaseNote) error {
	copied := *note
	r.notes[note.ID] = &copied
	return nil
}

func (r *fakeReleaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.notes, id)
	return nil
}

func (r *fakeReleaseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.notes)), nil
}

func (r *fakeReleaseRepo) FindByVersion(_ context.Context, version string) (*catalog.ReleaseNote, error) {
	for _, n := range r.notes {
		if n.Version == version {
			copied := *n
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReleaseRepo) FindPublished(_ context.Context, _ shared.Filter) ([]catalog.ReleaseNote, error) {
	out := make([]catalog.ReleaseNote, 0)
	for _, n := range r.notes {
		if n.IsPublished {
			out = append(out, *n)
		}
	}
	return out, nil
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

func onlyActive(filter shared.Filter) bool {
	if filter.Filters == nil {
		return false
	}
	active, ok := filter.Filters["is_active"].(bool)
	return ok && active
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
