// internal/repository/package_repo.go
package repository

import (
	"context"

	"agent-ledger/internal/domain"
)

// PackageRepository reads the pricing catalog.
type PackageRepository interface {
	GetPackageByID(ctx context.Context, q DBExecutor, id int64) (*domain.Package, error)
	ListPackages(ctx context.Context, q DBExecutor) ([]domain.Package, error)
}
