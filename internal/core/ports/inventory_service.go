// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ammerola/biomarket-be/internal/core/domain"
)

// InventoryService defines the application service port for the two business
// operations plus reporting. This interface is implemented by the application
// service and consumed by the menu.
type InventoryService interface {
	AddProduct(ctx context.Context, warehouse, name string, quantity int, purchasePrice, salePrice decimal.Decimal) error
	SellProduct(ctx context.Context, warehouse, name string, quantity int) (domain.SaleRecord, error)
	ProfitReport(ctx context.Context) (ProfitReport, error)
	ListProducts(ctx context.Context, warehouse string) ([]domain.Product, error)
	ListWarehouses(ctx context.Context) ([]string, error)
	Sales(ctx context.Context) ([]domain.SaleRecord, error)
}

// ProfitReport aggregates the sales ledger. Gross is total revenue ignoring
// cost; Net is gross minus total cost of goods sold.
type ProfitReport struct {
	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`
	Sales int             `json:"sales"`
}
