// internal/core/ports/repositories.go
package ports

import (
	"context"

	"github.com/ammerola/biomarket-be/internal/core/domain"
)

// ProductRepository defines the persistence port for per-warehouse stock.
// Implemented by the flat-file adapter; one table file per warehouse.
type ProductRepository interface {
	// Load returns the full stock of a warehouse in file order. A warehouse
	// that was never written loads as an empty slice, not an error.
	Load(ctx context.Context, warehouse string) ([]domain.Product, error)
	// Save rewrites the warehouse table atomically.
	Save(ctx context.Context, warehouse string, products []domain.Product) error
	// ListWarehouses enumerates the warehouses that have a backing table.
	ListWarehouses(ctx context.Context) ([]string, error)
}

// SaleRepository defines the persistence port for the sales ledger.
type SaleRepository interface {
	Load(ctx context.Context) ([]domain.SaleRecord, error)
	Save(ctx context.Context, records []domain.SaleRecord) error
}
