// internal/core/domain/sale.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is one completed sale transaction. Records are immutable once
// created and reference the product by name only, so they stay valid even if
// the warehouse entry later changes or empties out.
type SaleRecord struct {
	ProductName       string          `json:"product_name"`
	QuantitySold      int             `json:"quantity_sold"`
	UnitPurchasePrice decimal.Decimal `json:"unit_purchase_price"`
	UnitSalePrice     decimal.Decimal `json:"unit_sale_price"`
	Profit            decimal.Decimal `json:"profit"`
	SoldAt            time.Time       `json:"sold_at"`
}

// NewSaleRecord computes the profit at the time of sale and freezes it into
// the record. Loss sales produce a negative profit, not an error.
func NewSaleRecord(productName string, quantitySold int, purchasePrice, salePrice decimal.Decimal, soldAt time.Time) (SaleRecord, error) {
	if strings.TrimSpace(productName) == "" {
		return SaleRecord{}, &ValidationError{Field: "product_name", Reason: "must not be empty"}
	}
	if quantitySold <= 0 {
		return SaleRecord{}, &ValidationError{Field: "quantity_sold", Reason: "must be positive"}
	}
	if purchasePrice.IsNegative() {
		return SaleRecord{}, &ValidationError{Field: "unit_purchase_price", Reason: "must not be negative"}
	}
	if salePrice.IsNegative() {
		return SaleRecord{}, &ValidationError{Field: "unit_sale_price", Reason: "must not be negative"}
	}

	qty := decimal.NewFromInt(int64(quantitySold))
	return SaleRecord{
		ProductName:       strings.TrimSpace(productName),
		QuantitySold:      quantitySold,
		UnitPurchasePrice: purchasePrice,
		UnitSalePrice:     salePrice,
		Profit:            salePrice.Sub(purchasePrice).Mul(qty),
		SoldAt:            soldAt,
	}, nil
}

// Revenue returns quantity sold times the unit sale price.
func (r SaleRecord) Revenue() decimal.Decimal {
	return r.UnitSalePrice.Mul(decimal.NewFromInt(int64(r.QuantitySold)))
}

// Cost returns quantity sold times the unit purchase price.
func (r SaleRecord) Cost() decimal.Decimal {
	return r.UnitPurchasePrice.Mul(decimal.NewFromInt(int64(r.QuantitySold)))
}
