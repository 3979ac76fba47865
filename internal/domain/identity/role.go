package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// Permission is a value object identifying a single grantable capability.
// Keys use the form "<resource>.<action>", e.g. "clients.view_all".
type Permission struct {
	Key      string
	Resource string
	Action   string
	Label    string
}

var permissionKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*$`)

// NewPermission creates a permission from resource and action parts
func NewPermission(resource, action, label string) (Permission, error) {
	key := resource + "." + action
	return ParsePermission(key, label)
}

// ParsePermission creates a permission from its dotted key
func ParsePermission(key, label string) (Permission, error) {
	if !permissionKeyRegex.MatchString(key) {
		return Permission{}, shared.NewDomainError("INVALID_PERMISSION", "Permission key must match resource.action format")
	}

	parts := strings.SplitN(key, ".", 2)
	return Permission{
		Key:      key,
		Resource: parts[0],
		Action:   parts[1],
		Label:    label,
	}, nil
}

// Well-known resources
const (
	ResourceClients   = "clients"
	ResourcePartners  = "partners"
	ResourceOrders    = "orders"
	ResourceCatalog   = "catalog"
	ResourcePrices    = "prices"
	ResourceReleases  = "releases"
	ResourceUsers     = "users"
	ResourceRoles     = "roles"
	ResourceDashboard = "dashboard"
)

// Well-known actions
const (
	ActionViewOwn = "view_own"
	ActionViewAll = "view_all"
	ActionCreate  = "create"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionManage  = "manage"
)

// Predefined role names
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RolePartner = "partner"
)

// Role is the aggregate root for permission assignment.
// System roles cannot be deleted.
type Role struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	IsSystem    bool
	Permissions []Permission
}

// RolePermission represents a granted permission row for a role
type RolePermission struct {
	RoleID        uuid.UUID
	PermissionKey string
	CreatedAt     time.Time
}

// NewRole creates a new role with the given name
func NewRole(name, description string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		Permissions:       make([]Permission, 0),
	}, nil
}

// NewSystemRole creates a built-in role that cannot be deleted
func NewSystemRole(name, description string) (*Role, error) {
	role, err := NewRole(name, description)
	if err != nil {
		return nil, err
	}

	role.IsSystem = true
	return role, nil
}

// Grant adds a permission to the role
func (r *Role) Grant(perm Permission) error {
	if r.HasPermission(perm.Key) {
		return shared.NewDomainError("PERMISSION_ALREADY_GRANTED", "Role already has this permission")
	}

	r.Permissions = append(r.Permissions, perm)
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Revoke removes a permission from the role
func (r *Role) Revoke(key string) error {
	found := false
	kept := make([]Permission, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p.Key == key {
			found = true
			continue
		}
		kept = append(kept, p)
	}

	if !found {
		return shared.NewDomainError("PERMISSION_NOT_GRANTED", "Role does not have this permission")
	}

	r.Permissions = kept
	r.Touch()
	r.IncrementVersion()

	return nil
}

// SetPermissions replaces the role's permission set
func (r *Role) SetPermissions(perms []Permission) {
	seen := make(map[string]bool, len(perms))
	unique := make([]Permission, 0, len(perms))
	for _, p := range perms {
		if !seen[p.Key] {
			seen[p.Key] = true
			unique = append(unique, p)
		}
	}

	r.Permissions = unique
	r.Touch()
	r.IncrementVersion()
}

// HasPermission checks whether the role holds the given permission key
func (r *Role) HasPermission(key string) bool {
	for _, p := range r.Permissions {
		if p.Key == key {
			return true
		}
	}
	return false
}

// PermissionKeys returns the sorted-by-insertion list of granted keys
func (r *Role) PermissionKeys() []string {
	keys := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		keys = append(keys, p.Key)
	}
	return keys
}

// Rename changes the role name
func (r *Role) Rename(name string) error {
	if err := validateRoleName(name); err != nil {
		return err
	}
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be renamed")
	}

	r.Name = strings.TrimSpace(name)
	r.Touch()
	r.IncrementVersion()

	return nil
}

// SetDescription updates the role description
func (r *Role) SetDescription(description string) {
	r.Description = description
	r.Touch()
	r.IncrementVersion()
}

// CanDelete returns true if the role may be removed
func (r *Role) CanDelete() bool {
	return !r.IsSystem
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}
