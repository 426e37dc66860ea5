// internal/adapters/flatfile/repository_test.go
package flatfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/biomarket-be/internal/adapters/flatfile"
	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/test/helpers"
)

func TestProductRepository_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := flatfile.NewProductRepository(dir, "sales.csv", helpers.TestLogger())
	ctx := context.Background()

	want := []domain.Product{
		helpers.CreateTestProduct(),
		helpers.CreateTestProduct(func(p *domain.Product) {
			p.Name = "Oranges"
			p.Quantity = 0
			p.PurchasePrice = decimal.RequireFromString("1.25")
			p.SalePrice = decimal.RequireFromString("2.4")
		}),
	}

	require.NoError(t, repo.Save(ctx, "store", want))
	got, err := repo.Load(ctx, "store")
	require.NoError(t, err)

	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].PurchasePrice.Equal(got[i].PurchasePrice))
		assert.True(t, want[i].SalePrice.Equal(got[i].SalePrice))
	}
}

func TestProductRepository_LoadNeverWrittenWarehouse(t *testing.T) {
	repo := flatfile.NewProductRepository(t.TempDir(), "sales.csv", helpers.TestLogger())

	got, err := repo.Load(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductRepository_LoadRejectsNegativeQuantityRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("name,quantity,purchase_price,sale_price\nApples,-3,0.8,1.5\n"), 0o644))
	repo := flatfile.NewProductRepository(dir, "sales.csv", helpers.TestLogger())

	_, err := repo.Load(context.Background(), "store")

	var malformed *domain.MalformedDataError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
}

func TestProductRepository_ListWarehousesSkipsLedger(t *testing.T) {
	dir := t.TempDir()
	repo := flatfile.NewProductRepository(dir, "sales.csv", helpers.TestLogger())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "store", nil))
	require.NoError(t, repo.Save(ctx, "depot", nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sales.csv"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := repo.ListWarehouses(ctx)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"store", "depot"}, names)
}

func TestProductRepository_RejectsPathSeparatorInWarehouseName(t *testing.T) {
	dir := t.TempDir()
	repo := flatfile.NewProductRepository(dir, "sales.csv", helpers.TestLogger())
	ctx := context.Background()

	tests := []string{"../escape", "a/b", `a\b`, ""}
	for _, name := range tests {
		err := repo.Save(ctx, name, []domain.Product{helpers.CreateTestProduct()})
		require.Error(t, err, "name %q must not resolve to a file", name)
		assert.True(t, domain.IsValidation(err))

		_, err = repo.Load(ctx, name)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file may be created outside or inside the data dir")
}

func TestProductRepository_ListWarehousesMissingDataDir(t *testing.T) {
	repo := flatfile.NewProductRepository(filepath.Join(t.TempDir(), "absent"), "sales.csv", helpers.TestLogger())

	names, err := repo.ListWarehouses(context.Background())

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSaleRepository_RoundTrip(t *testing.T) {
	repo := flatfile.NewSaleRepository(t.TempDir(), "sales.csv", helpers.TestLogger())
	ctx := context.Background()

	want := []domain.SaleRecord{
		helpers.CreateTestSale(),
		helpers.CreateTestSale(func(s *domain.SaleRecord) {
			s.ProductName = "Overripe Bananas"
			s.QuantitySold = 4
			s.UnitPurchasePrice = decimal.RequireFromString("2")
			s.UnitSalePrice = decimal.RequireFromString("0.5")
			s.Profit = decimal.RequireFromString("-6")
			s.SoldAt = time.Date(2025, 12, 31, 23, 59, 58, 0, time.Local)
		}),
	}

	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].ProductName, got[i].ProductName)
		assert.Equal(t, want[i].QuantitySold, got[i].QuantitySold)
		assert.True(t, want[i].Profit.Equal(got[i].Profit),
			"signed profit must survive the round trip, got %s", got[i].Profit)
		assert.True(t, want[i].SoldAt.Equal(got[i].SoldAt))
	}
}

func TestSaleRepository_LoadRejectsBadTimestamp(t *testing.T) {
	dir := t.TempDir()
	content := "name,quantity_sold,unit_purchase_price,unit_sale_price,profit,timestamp\n" +
		"Apples,10,0.8,1.5,7,2025-06-15T10:30:00Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sales.csv"), []byte(content), 0o644))
	repo := flatfile.NewSaleRepository(dir, "sales.csv", helpers.TestLogger())

	_, err := repo.Load(context.Background())

	var malformed *domain.MalformedDataError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
}

func TestSaleRepository_TimestampUsesDayMonthYearLayout(t *testing.T) {
	dir := t.TempDir()
	repo := flatfile.NewSaleRepository(dir, "sales.csv", helpers.TestLogger())
	ctx := context.Background()

	rec := helpers.CreateTestSale(func(s *domain.SaleRecord) {
		s.SoldAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
	})
	require.NoError(t, repo.Save(ctx, []domain.SaleRecord{rec}))

	content, err := os.ReadFile(filepath.Join(dir, "sales.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "02/01/2025 03:04:05")
}
