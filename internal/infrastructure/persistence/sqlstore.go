package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/storage"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// SQLStore is the relational implementation of the storage contract. Every
// method runs its statements through the scoped execution unit, so the
// row-level-security policies see the caller's tenant stamp; the explicit
// tenant_id predicates in the queries are a second, independent fence.
type SQLStore struct {
	runner *tenant.Runner
}

// NewSQLStore creates the relational store on top of a Runner
func NewSQLStore(runner *tenant.Runner) *SQLStore {
	return &SQLStore{runner: runner}
}

var _ storage.Store = (*SQLStore)(nil)

// sortColumns is the allow-list for ORDER BY targets. Filter input comes
// from query strings and must never reach SQL verbatim.
var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"amount":     true,
	"status":     true,
	"source":     true,
	"category":   true,
	"code":       true,
	"price":      true,
	"stock":      true,
}

// applyFilter applies ordering, equality filters and pagination to a query.
// searchCols are the columns matched case-insensitively against
// filter.Search.
func applyFilter(tx *gorm.DB, filter shared.Filter, searchCols ...string) *gorm.DB {
	if filter.Search != "" && len(searchCols) > 0 {
		clauses := make([]string, 0, len(searchCols))
		args := make([]interface{}, 0, len(searchCols))
		for _, col := range searchCols {
			clauses = append(clauses, col+" ILIKE ?")
			args = append(args, "%"+filter.Search+"%")
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}

	for col, val := range filter.Filters {
		if sortColumns[col] {
			tx = tx.Where(fmt.Sprintf("%s = ?", col), val)
		}
	}

	orderBy := "created_at"
	if sortColumns[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	tx = tx.Order(fmt.Sprintf("%s %s", orderBy, dir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return tx.Offset((page - 1) * pageSize).Limit(pageSize)
}

// applyCountFilter applies only the row-selecting parts of a filter, for
// totals computed before pagination
func applyCountFilter(tx *gorm.DB, filter shared.Filter, searchCols ...string) *gorm.DB {
	if filter.Search != "" && len(searchCols) > 0 {
		clauses := make([]string, 0, len(searchCols))
		args := make([]interface{}, 0, len(searchCols))
		for _, col := range searchCols {
			clauses = append(clauses, col+" ILIKE ?")
			args = append(args, "%"+filter.Search+"%")
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}
	for col, val := range filter.Filters {
		if sortColumns[col] {
			tx = tx.Where(fmt.Sprintf("%s = ?", col), val)
		}
	}
	return tx
}

// mapNotFound translates gorm's missing-row error into the domain sentinel
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// scopeFrom resolves the security context for operations that are not bound
// to a single tenant (shared reference data). When the request context
// carries no authenticated scope the fallback matches global rows only.
func scopeFrom(ctx context.Context) tenant.SecurityContext {
	if sc, ok := tenant.FromContext(ctx); ok {
		return sc
	}
	return tenant.SecurityContext{Role: tenant.RoleTenant}
}
