package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/shared"
)

// applyFilter applies equality filters, ordering and pagination to a query.
// Only column names present in allowedColumns are honored so request input
// never reaches the SQL as an identifier.
func applyFilter(db *gorm.DB, filter shared.Filter, allowedColumns map[string]bool) *gorm.DB {
	for column, value := range filter.Filters {
		if allowedColumns[column] {
			db = db.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}

	orderBy := "created_at"
	if filter.OrderBy != "" && allowedColumns[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	db = db.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return db.Offset((page - 1) * pageSize).Limit(pageSize)
}

// applyCountFilter applies only the equality filters, for Count queries.
func applyCountFilter(db *gorm.DB, filter shared.Filter, allowedColumns map[string]bool) *gorm.DB {
	for column, value := range filter.Filters {
		if allowedColumns[column] {
			db = db.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}
	return db
}
