// internal/adapters/flatfile/sale_repository.go
package flatfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/internal/core/ports"
)

// SaleTimeLayout is the on-disk timestamp format: day/month/year clock time,
// inherited from the ledger files this system exchanges with its operators.
const SaleTimeLayout = "02/01/2006 15:04:05"

var saleColumns = []string{
	"name", "quantity_sold", "unit_purchase_price", "unit_sale_price", "profit", "timestamp",
}

// SaleRepository persists the sales ledger as a single CSV table.
type SaleRepository struct {
	table  Table[domain.SaleRecord]
	logger *slog.Logger
}

var _ ports.SaleRepository = (*SaleRepository)(nil)

// NewSaleRepository creates a flat-file sale repository writing ledgerFile
// inside dataDir.
func NewSaleRepository(dataDir, ledgerFile string, logger *slog.Logger) *SaleRepository {
	return &SaleRepository{
		table: Table[domain.SaleRecord]{
			Path: filepath.Join(dataDir, ledgerFile),
			Schema: Schema[domain.SaleRecord]{
				Columns: saleColumns,
				Encode:  encodeSale,
				Decode:  decodeSale,
			},
		},
		logger: logger.With(slog.String("repository", "sale")),
	}
}

// Load reads the full ledger in chronological insertion order.
func (r *SaleRepository) Load(ctx context.Context) ([]domain.SaleRecord, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "loaded sales ledger", slog.Int("records", len(records)))
	return records, nil
}

// Save atomically rewrites the ledger table.
func (r *SaleRepository) Save(ctx context.Context, records []domain.SaleRecord) error {
	if err := r.table.Save(records); err != nil {
		return err
	}
	r.logger.DebugContext(ctx, "saved sales ledger", slog.Int("records", len(records)))
	return nil
}

func encodeSale(s domain.SaleRecord) []string {
	return []string{
		s.ProductName,
		strconv.Itoa(s.QuantitySold),
		s.UnitPurchasePrice.String(),
		s.UnitSalePrice.String(),
		s.Profit.String(),
		s.SoldAt.Format(SaleTimeLayout),
	}
}

func decodeSale(fields []string) (domain.SaleRecord, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("quantity_sold %q is not an integer", fields[1])
	}
	purchase, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("unit_purchase_price %q is not a decimal", fields[2])
	}
	sale, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("unit_sale_price %q is not a decimal", fields[3])
	}
	profit, err := decimal.NewFromString(strings.TrimSpace(fields[4]))
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("profit %q is not a decimal", fields[4])
	}
	soldAt, err := time.ParseInLocation(SaleTimeLayout, strings.TrimSpace(fields[5]), time.Local)
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("timestamp %q does not match %s", fields[5], SaleTimeLayout)
	}
	if quantity <= 0 {
		return domain.SaleRecord{}, fmt.Errorf("quantity_sold must be positive, got %d", quantity)
	}

	return domain.SaleRecord{
		ProductName:       fields[0],
		QuantitySold:      quantity,
		UnitPurchasePrice: purchase,
		UnitSalePrice:     sale,
		Profit:            profit,
		SoldAt:            soldAt,
	}, nil
}
