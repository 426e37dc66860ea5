// internal/core/services/warehouse_test.go
package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/biomarket-be/internal/adapters/flatfile"
	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/internal/core/services"
	"github.com/ammerola/biomarket-be/test/helpers"
)

func newTestWarehouse(t *testing.T) (*services.Warehouse, string) {
	t.Helper()
	dir := t.TempDir()
	repo := flatfile.NewProductRepository(dir, "sales.csv", helpers.TestLogger())
	return services.NewWarehouse("store", repo, helpers.TestLogger()), dir
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWarehouse_AddStock_CreatesThenMerges(t *testing.T) {
	w, _ := newTestWarehouse(t)
	ctx := context.Background()

	require.NoError(t, w.AddStock(ctx, "Apples", 50, dec("0.8"), dec("1.5")))
	require.NoError(t, w.AddStock(ctx, "Apples", 30, dec("0.9"), dec("1.6")))

	p, err := w.Find(ctx, "Apples")
	require.NoError(t, err)
	assert.Equal(t, 80, p.Quantity, "adding the same name twice sums quantities")
	assert.True(t, p.PurchasePrice.Equal(dec("0.9")), "prices take the second call's values")
	assert.True(t, p.SalePrice.Equal(dec("1.6")))

	products, err := w.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1, "merge must not duplicate the entry")
}

func TestWarehouse_AddStock_Validation(t *testing.T) {
	w, _ := newTestWarehouse(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		product  string
		quantity int
		purchase string
		sale     string
	}{
		{name: "zero_quantity", product: "Apples", quantity: 0, purchase: "1", sale: "1"},
		{name: "negative_quantity", product: "Apples", quantity: -5, purchase: "1", sale: "1"},
		{name: "negative_purchase_price", product: "Apples", quantity: 1, purchase: "-1", sale: "1"},
		{name: "negative_sale_price", product: "Apples", quantity: 1, purchase: "1", sale: "-1"},
		{name: "blank_name", product: "  ", quantity: 1, purchase: "1", sale: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.AddStock(ctx, tt.product, tt.quantity, dec(tt.purchase), dec(tt.sale))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	products, err := w.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products, "rejected inputs must leave no partial effect")
}

func TestWarehouse_AddStock_ValidationAppliesToExistingEntries(t *testing.T) {
	w, _ := newTestWarehouse(t)
	ctx := context.Background()
	require.NoError(t, w.AddStock(ctx, "Apples", 50, dec("0.8"), dec("1.5")))

	tests := []struct {
		name     string
		quantity int
		purchase string
		sale     string
	}{
		{name: "negative_purchase_price_on_merge", quantity: 1, purchase: "-1", sale: "1"},
		{name: "negative_sale_price_on_merge", quantity: 1, purchase: "1", sale: "-1"},
		{name: "zero_quantity_on_merge", quantity: 0, purchase: "1", sale: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.AddStock(ctx, "Apples", tt.quantity, dec(tt.purchase), dec(tt.sale))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	p, err := w.Find(ctx, "Apples")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Quantity, "rejected merges must not change the quantity")
	assert.True(t, p.PurchasePrice.Equal(dec("0.8")), "rejected merges must not replace prices, got %s", p.PurchasePrice)
	assert.True(t, p.SalePrice.Equal(dec("1.5")))
}

func TestWarehouse_AddStock_TrimsNameBeforeMatching(t *testing.T) {
	w, _ := newTestWarehouse(t)
	ctx := context.Background()

	require.NoError(t, w.AddStock(ctx, "Apples", 50, dec("0.8"), dec("1.5")))
	require.NoError(t, w.AddStock(ctx, "  Apples  ", 30, dec("0.9"), dec("1.6")))

	products, err := w.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1, "a padded name must merge into the existing entry, not duplicate it")
	assert.Equal(t, "Apples", products[0].Name)
	assert.Equal(t, 80, products[0].Quantity)
}

func TestWarehouse_DeductStock_ReturnsPricesAtTimeOfCall(t *testing.T) {
	w, _ := newTestWarehouse(t)
	ctx := context.Background()
	require.NoError(t, w.AddStock(ctx, "Apples", 50, dec("0.8"), dec("1.5")))

	snapshot, err := w.DeductStock(ctx, "Apples", 10)

	require.NoError(t, err)
	assert.Equal(t, 40, snapshot.Quantity)
	assert.True(t, snapshot.PurchasePrice.Equal(dec("0.8")))
	assert.True(t, snapshot.SalePrice.Equal(dec("1.5")))

	p, err := w.Find(ctx, "Apples")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Quantity, "deduction must persist")
}

func TestWarehouse_DeductStock_UnknownProduct(t *testing.T) {
	w, dir := newTestWarehouse(t)
	ctx := context.Background()
	require.NoError(t, w.AddStock(ctx, "Apples", 50, dec("0.8"), dec("1.5")))
	before, err := os.ReadFile(filepath.Join(dir, "store.csv"))
	require.NoError(t, err)

	_, err = w.DeductStock(ctx, "Oranges", 5)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	after, readErr := os.ReadFile(filepath.Join(dir, "store.csv"))
	require.NoError(t, readErr)
	assert.Equal(t, before, after, "a read-only failure must not rewrite the file")
}

func TestWarehouse_DeductStock_InsufficientStockLeavesStockUntouched(t *testing.T) {
	w, _ := newTestWarehouse(t)
	ctx := context.Background()
	require.NoError(t, w.AddStock(ctx, "Apples", 40, dec("0.8"), dec("1.5")))

	_, err := w.DeductStock(ctx, "Apples", 1000)

	require.Error(t, err)
	assert.True(t, domain.IsInsufficientStock(err))

	p, err := w.Find(ctx, "Apples")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Quantity)
}

func TestWarehouse_DeductStock_ToZeroKeepsEntryKnown(t *testing.T) {
	w, _ := newTestWarehouse(t)
	ctx := context.Background()
	require.NoError(t, w.AddStock(ctx, "Apples", 10, dec("0.8"), dec("1.5")))

	_, err := w.DeductStock(ctx, "Apples", 10)
	require.NoError(t, err)

	p, err := w.Find(ctx, "Apples")
	require.NoError(t, err, "a product at quantity 0 remains a known entry")
	assert.Equal(t, 0, p.Quantity)
}

func TestWarehouse_Find_Unknown(t *testing.T) {
	w, _ := newTestWarehouse(t)

	_, err := w.Find(context.Background(), "Oranges")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestWarehouse_HonorsExternalFileEdits(t *testing.T) {
	w, dir := newTestWarehouse(t)
	ctx := context.Background()
	require.NoError(t, w.AddStock(ctx, "Apples", 50, dec("0.8"), dec("1.5")))

	// Operator edits the file by hand between operations.
	edited := "name,quantity,purchase_price,sale_price\nApples,7,0.8,1.5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "store.csv"), []byte(edited), 0o644))

	p, err := w.Find(ctx, "Apples")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity, "every operation re-reads the current on-disk state")
}
