package identity

import (
	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// Actor is the authenticated caller of an operation: the user, the
// partner they act for (if any) and their resolved permission keys.
type Actor struct {
	UserID      uuid.UUID
	PartnerID   *uuid.UUID
	Permissions []string
}

// Has reports whether the actor holds the given permission key
func (a Actor) Has(key string) bool {
	for _, p := range a.Permissions {
		if p == key {
			return true
		}
	}
	return false
}

// HasAny reports whether the actor holds at least one of the keys
func (a Actor) HasAny(keys ...string) bool {
	for _, key := range keys {
		if a.Has(key) {
			return true
		}
	}
	return false
}

// ScopeFor resolves the visibility scope for a resource.
// view_all grants an unrestricted scope, view_own restricts to rows the
// actor owns directly or through their partner. Holding neither key
// forbids the operation.
func (a Actor) ScopeFor(resource string) (shared.OwnershipScope, error) {
	if a.Has(resource + "." + ActionViewAll) {
		return shared.UnrestrictedScope(), nil
	}
	if a.Has(resource + "." + ActionViewOwn) {
		return shared.OwnScope(a.UserID, a.PartnerID), nil
	}
	return shared.OwnershipScope{}, shared.ErrForbidden
}

// Require returns ErrForbidden unless the actor holds the key
func (a Actor) Require(key string) error {
	if !a.Has(key) {
		return shared.ErrForbidden
	}
	return nil
}
