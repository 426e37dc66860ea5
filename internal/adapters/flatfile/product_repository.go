// internal/adapters/flatfile/product_repository.go
package flatfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/internal/core/ports"
)

const tableExt = ".csv"

var productColumns = []string{"name", "quantity", "purchase_price", "sale_price"}

// ProductRepository persists warehouse stock as one CSV table per warehouse
// under a single data directory.
type ProductRepository struct {
	dataDir    string
	ledgerFile string // excluded from warehouse enumeration
	logger     *slog.Logger
}

// Statically assert that *ProductRepository implements the repository port.
var _ ports.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a flat-file product repository rooted at dataDir.
func NewProductRepository(dataDir, ledgerFile string, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		dataDir:    dataDir,
		ledgerFile: ledgerFile,
		logger:     logger.With(slog.String("repository", "product")),
	}
}

// Load reads the full stock of one warehouse in file order.
func (r *ProductRepository) Load(ctx context.Context, warehouse string) ([]domain.Product, error) {
	table, err := r.table(warehouse)
	if err != nil {
		return nil, err
	}
	products, err := table.Load()
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "loaded warehouse table",
		slog.String("warehouse", warehouse),
		slog.Int("products", len(products)))
	return products, nil
}

// Save atomically rewrites the warehouse table.
func (r *ProductRepository) Save(ctx context.Context, warehouse string, products []domain.Product) error {
	table, err := r.table(warehouse)
	if err != nil {
		return err
	}
	if err := table.Save(products); err != nil {
		return err
	}
	r.logger.DebugContext(ctx, "saved warehouse table",
		slog.String("warehouse", warehouse),
		slog.Int("products", len(products)))
	return nil
}

// ListWarehouses enumerates warehouse tables in the data directory, skipping
// the sales ledger file which lives alongside them.
func (r *ProductRepository) ListWarehouses(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "readdir", Path: r.dataDir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), tableExt) || e.Name() == r.ledgerFile {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), tableExt))
	}
	return names, nil
}

// table resolves the backing file for a warehouse. Names carrying path
// separators are rejected so a warehouse can never resolve outside dataDir.
func (r *ProductRepository) table(warehouse string) (Table[domain.Product], error) {
	if warehouse == "" || strings.ContainsAny(warehouse, `/\`) {
		return Table[domain.Product]{}, &domain.ValidationError{
			Field:  "warehouse",
			Reason: "must be a bare name without path separators",
		}
	}
	return Table[domain.Product]{
		Path: filepath.Join(r.dataDir, warehouse+tableExt),
		Schema: Schema[domain.Product]{
			Columns: productColumns,
			Encode:  encodeProduct,
			Decode:  decodeProduct,
		},
	}, nil
}

func encodeProduct(p domain.Product) []string {
	return []string{
		p.Name,
		strconv.Itoa(p.Quantity),
		p.PurchasePrice.String(),
		p.SalePrice.String(),
	}
}

// decodeProduct coerces one row and validates it once, at the storage
// boundary; downstream code never re-validates loaded entries.
func decodeProduct(fields []string) (domain.Product, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("quantity %q is not an integer", fields[1])
	}
	purchase, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("purchase_price %q is not a decimal", fields[2])
	}
	sale, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("sale_price %q is not a decimal", fields[3])
	}

	p := domain.Product{
		Name:          fields[0],
		Quantity:      quantity,
		PurchasePrice: purchase,
		SalePrice:     sale,
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
