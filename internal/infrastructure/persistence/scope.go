package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// clientScope restricts a clients query to rows visible under the scope:
// rows owned by the user, created by the user, or belonging to the
// user's partner.
func clientScope(query *gorm.DB, scope shared.OwnershipScope) *gorm.DB {
	if scope.All {
		return query
	}
	if scope.PartnerID != nil {
		return query.Where(
			"owner_user_id = ? OR created_by_user_id = ? OR owner_partner_id = ?",
			scope.UserID, scope.UserID, *scope.PartnerID,
		)
	}
	return query.Where(
		"owner_user_id = ? OR created_by_user_id = ?",
		scope.UserID, scope.UserID,
	)
}

// orderScope restricts an orders query to rows visible under the scope:
// rows created by the user or attributed to the user's partner.
func orderScope(query *gorm.DB, scope shared.OwnershipScope) *gorm.DB {
	if scope.All {
		return query
	}
	if scope.PartnerID != nil {
		return query.Where(
			"created_by_user_id = ? OR partner_id = ?",
			scope.UserID, *scope.PartnerID,
		)
	}
	return query.Where("created_by_user_id = ?", scope.UserID)
}

// applyPagination applies page/size and ordering from the filter.
// orderColumns whitelists sortable columns; unknown columns fall back
// to the default ordering.
func applyPagination(query *gorm.DB, filter shared.Filter, orderColumns map[string]bool, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" && orderColumns[filter.OrderBy] {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
