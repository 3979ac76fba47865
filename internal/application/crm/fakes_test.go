package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

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
	return r.CountScoped(ctx, shared.UnrestrictedScope(), filter)
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

func markupKey(partnerID, clientID uuid.UUID) string {
	return partnerID.String() + "/" + clientID.String()
}

func (r *fakeMarkupRepo) FindByPartnerAndClient(_ context.Context, partnerID, clientID uuid.UUID) (*crm.PartnerClientMarkup, error) {
	if m, ok := r.overrides[markupKey(partnerID, clientID)]; ok {
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
	r.overrides[markupKey(markup.PartnerID, markup.ClientID)] = &copied
	return nil
}

func (r *fakeMarkupRepo) Delete(_ context.Context, partnerID, clientID uuid.UUID) error {
	delete(r.overrides, markupKey(partnerID, clientID))
	return nil
}
