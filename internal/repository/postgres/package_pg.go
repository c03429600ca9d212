// internal/repository/postgres/package_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
	"agent-ledger/internal/util"
)

// PackageRepository implements repository.PackageRepository for PostgreSQL.
type PackageRepository struct{}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository() repository.PackageRepository {
	return &PackageRepository{}
}

// GetPackageByID retrieves a package by its ID.
func (r *PackageRepository) GetPackageByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Package, error) {
	var pkg domain.Package
	err := q.GetContext(ctx, &pkg, `SELECT id, name, requests, price_usdc FROM packages WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrPackageNotFound
		}
		return nil, wrapError(fmt.Sprintf("get package by ID %d", id), err)
	}
	return &pkg, nil
}

// ListPackages retrieves the whole catalog ordered by price.
func (r *PackageRepository) ListPackages(ctx context.Context, q repository.DBExecutor) ([]domain.Package, error) {
	packages := []domain.Package{}
	if err := q.SelectContext(ctx, &packages, `SELECT id, name, requests, price_usdc FROM packages ORDER BY price_usdc, id`); err != nil {
		return nil, wrapError("list packages", err)
	}
	return packages, nil
}
