package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	DisplayName  string     `gorm:"type:varchar(200)"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerID    *uuid.UUID `gorm:"type:uuid;index"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		RoleID:            m.RoleID,
		PartnerID:         m.PartnerID,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.RoleID = u.RoleID
	m.PartnerID = u.PartnerID
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// RoleModel is the persistence model for the Role aggregate.
// Granted permissions live in role_permissions rows.
type RoleModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	IsSystem    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role entity.
// Permissions must be loaded separately by the repository.
func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		IsSystem:          m.IsSystem,
		Permissions:       make([]identity.Permission, 0),
	}
}

// FromDomain populates the persistence model from a domain Role entity.
func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Name = r.Name
	m.Description = r.Description
	m.IsSystem = r.IsSystem
}

// RoleModelFromDomain creates a new persistence model from a domain Role entity.
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{}
	m.FromDomain(r)
	return m
}

// RolePermissionModel is the persistence model for a granted permission row.
type RolePermissionModel struct {
	RoleID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionKey string    `gorm:"type:varchar(100);primaryKey"`
	Label         string    `gorm:"type:varchar(200)"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// ToDomain converts the row to a domain Permission value object.
func (m *RolePermissionModel) ToDomain() (identity.Permission, error) {
	return identity.ParsePermission(m.PermissionKey, m.Label)
}
