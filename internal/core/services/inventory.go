// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/internal/core/ports"
)

// InventoryService orchestrates warehouses and the sales ledger for the
// stock-a-product and sell-a-product operations and the profit report.
type InventoryService struct {
	repo       ports.ProductRepository
	ledger     *SalesLedger
	logger     *slog.Logger
	baseLogger *slog.Logger // handed to warehouses, which annotate it themselves
	warehouses map[string]*Warehouse
	now        func() time.Time
}

// Statically assert that *InventoryService implements the InventoryService port.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates the orchestrating service.
func NewInventoryService(repo ports.ProductRepository, ledger *SalesLedger, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:       repo,
		ledger:     ledger,
		logger:     logger.With(slog.String("service", "inventory")),
		baseLogger: logger,
		warehouses: make(map[string]*Warehouse),
		now:        time.Now,
	}
}

// AddProduct stocks a product in the named warehouse, creating the warehouse
// on first reference.
func (s *InventoryService) AddProduct(ctx context.Context, warehouse, name string, quantity int, purchasePrice, salePrice decimal.Decimal) error {
	if err := s.warehouse(warehouse).AddStock(ctx, name, quantity, purchasePrice, salePrice); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product added",
		slog.String("warehouse", warehouse),
		slog.String("product", name),
		slog.Int("quantity", quantity))
	return nil
}

// SellProduct deducts stock and records the sale in the ledger, in that order:
// the ledger only ever records stock that was actually removed. The two steps
// are not atomic across a crash; a crash in between leaves the stock
// decremented with the sale unrecorded. Business-rule failures (unknown
// product, insufficient stock) propagate typed and leave no side effect.
func (s *InventoryService) SellProduct(ctx context.Context, warehouse, name string, quantity int) (domain.SaleRecord, error) {
	snapshot, err := s.warehouse(warehouse).DeductStock(ctx, name, quantity)
	if err != nil {
		return domain.SaleRecord{}, err
	}

	rec, err := s.ledger.RecordSale(ctx, name, quantity, snapshot.PurchasePrice, snapshot.SalePrice, s.now())
	if err != nil {
		return rec, fmt.Errorf("stock deducted but sale not durably recorded: %w", err)
	}

	s.logger.InfoContext(ctx, "product sold",
		slog.String("warehouse", warehouse),
		slog.String("product", name),
		slog.Int("quantity", quantity),
		slog.String("profit", rec.Profit.String()))
	return rec, nil
}

// ProfitReport aggregates the sales ledger. Pure read, no mutation.
func (s *InventoryService) ProfitReport(ctx context.Context) (ports.ProfitReport, error) {
	gross, err := s.ledger.GrossProfit(ctx)
	if err != nil {
		return ports.ProfitReport{}, err
	}
	net, err := s.ledger.NetProfit(ctx)
	if err != nil {
		return ports.ProfitReport{}, err
	}
	sales, err := s.ledger.Sales(ctx)
	if err != nil {
		return ports.ProfitReport{}, err
	}
	return ports.ProfitReport{Gross: gross, Net: net, Sales: len(sales)}, nil
}

// ListProducts returns the stock of the named warehouse in table order.
func (s *InventoryService) ListProducts(ctx context.Context, warehouse string) ([]domain.Product, error) {
	return s.warehouse(warehouse).Products(ctx)
}

// ListWarehouses enumerates warehouses known to the repository.
func (s *InventoryService) ListWarehouses(ctx context.Context) ([]string, error) {
	return s.repo.ListWarehouses(ctx)
}

// Sales exposes the ledger records, newest last, for reporting and export.
func (s *InventoryService) Sales(ctx context.Context) ([]domain.SaleRecord, error) {
	return s.ledger.Sales(ctx)
}

// warehouse resolves or lazily creates the service for a named warehouse.
func (s *InventoryService) warehouse(name string) *Warehouse {
	w, ok := s.warehouses[name]
	if !ok {
		w = NewWarehouse(name, s.repo, s.baseLogger)
		s.warehouses[name] = w
	}
	return w
}
