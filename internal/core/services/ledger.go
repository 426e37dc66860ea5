// internal/core/services/ledger.go
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

// SalesLedger is the append-only record of completed sales. The ledger is
// loaded from storage once on first use and kept in memory for the remainder
// of the process; every append flushes the whole file immediately.
type SalesLedger struct {
	repo    ports.SaleRepository
	logger  *slog.Logger
	records []domain.SaleRecord
	loaded  bool
}

// NewSalesLedger creates a sales ledger backed by repo.
func NewSalesLedger(repo ports.SaleRepository, logger *slog.Logger) *SalesLedger {
	return &SalesLedger{
		repo:   repo,
		logger: logger.With(slog.String("service", "sales_ledger")),
	}
}

// RecordSale appends a sale with its profit computed at the time of sale. The
// ledger does not check stock availability; that is the orchestrator's job.
// If the flush fails the record stays in memory and the caller must treat the
// persisted state as uncertain and retry the save.
func (l *SalesLedger) RecordSale(ctx context.Context, productName string, quantitySold int, purchasePrice, salePrice decimal.Decimal, soldAt time.Time) (domain.SaleRecord, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return domain.SaleRecord{}, err
	}

	rec, err := domain.NewSaleRecord(productName, quantitySold, purchasePrice, salePrice, soldAt)
	if err != nil {
		return domain.SaleRecord{}, err
	}

	l.records = append(l.records, rec)
	if err := l.repo.Save(ctx, l.records); err != nil {
		return rec, fmt.Errorf("failed to flush sales ledger: %w", err)
	}

	l.logger.InfoContext(ctx, "sale recorded",
		slog.String("product", rec.ProductName),
		slog.Int("quantity_sold", rec.QuantitySold),
		slog.String("profit", rec.Profit.String()))
	return rec, nil
}

// GrossProfit sums quantity sold times unit sale price over all records.
func (l *SalesLedger) GrossProfit(ctx context.Context) (decimal.Decimal, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return decimal.Zero, err
	}
	gross := decimal.Zero
	for _, rec := range l.records {
		gross = gross.Add(rec.Revenue())
	}
	return gross, nil
}

// NetProfit sums the per-record profit over all records. Equivalently gross
// minus total cost of goods sold.
func (l *SalesLedger) NetProfit(ctx context.Context) (decimal.Decimal, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return decimal.Zero, err
	}
	net := decimal.Zero
	for _, rec := range l.records {
		net = net.Add(rec.Profit)
	}
	return net, nil
}

// Sales returns a copy of all records in chronological insertion order.
func (l *SalesLedger) Sales(ctx context.Context) ([]domain.SaleRecord, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.SaleRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}

func (l *SalesLedger) ensureLoaded(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	records, err := l.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sales ledger: %w", err)
	}
	l.records = records
	l.loaded = true
	l.logger.DebugContext(ctx, "sales ledger loaded", slog.Int("records", len(records)))
	return nil
}
