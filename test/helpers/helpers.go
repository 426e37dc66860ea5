// test/helpers/helpers.go
package helpers

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/biomarket-be/internal/core/domain"
)

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// CreateTestProduct builds a stocked product, optionally customized
func CreateTestProduct(opts ...func(*domain.Product)) domain.Product {
	p := domain.Product{
		Name:          "Apples",
		Quantity:      50,
		PurchasePrice: decimal.RequireFromString("0.8"),
		SalePrice:     decimal.RequireFromString("1.5"),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// CreateTestSale builds a sale record, optionally customized
func CreateTestSale(opts ...func(*domain.SaleRecord)) domain.SaleRecord {
	s := domain.SaleRecord{
		ProductName:       "Apples",
		QuantitySold:      10,
		UnitPurchasePrice: decimal.RequireFromString("0.8"),
		UnitSalePrice:     decimal.RequireFromString("1.5"),
		Profit:            decimal.RequireFromString("7"),
		SoldAt:            time.Date(2025, 6, 15, 10, 30, 0, 0, time.Local),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
