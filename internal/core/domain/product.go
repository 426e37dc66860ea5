// internal/core/domain/product.go
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a stocked item within a single warehouse. Identity is the
// case-sensitive name; a product at quantity zero stays in the warehouse as a
// known entry with no stock.
type Product struct {
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// NewProduct builds a validated product entry.
func NewProduct(name string, quantity int, purchasePrice, salePrice decimal.Decimal) (Product, error) {
	p := Product{
		Name:          strings.TrimSpace(name),
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if p.PurchasePrice.IsNegative() {
		return &ValidationError{Field: "purchase_price", Reason: "must not be negative"}
	}
	if p.SalePrice.IsNegative() {
		return &ValidationError{Field: "sale_price", Reason: "must not be negative"}
	}
	return nil
}

// Restock adds quantity onto the entry and replaces both prices with the newly
// supplied values. Latest add wins for pricing; quantities accumulate.
func (p *Product) Restock(quantity int, purchasePrice, salePrice decimal.Decimal) {
	p.Quantity += quantity
	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice
}

// Deduct removes quantity units from stock. The quantity is never driven
// negative: deducting more than is on hand fails and leaves the entry untouched.
func (p *Product) Deduct(quantity int) error {
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if quantity > p.Quantity {
		return &InsufficientStockError{
			Product:   p.Name,
			Available: p.Quantity,
			Requested: quantity,
		}
	}
	p.Quantity -= quantity
	return nil
}

// UnitMargin returns the per-unit profit at the current prices. Negative when
// the product sells at a loss.
func (p *Product) UnitMargin() decimal.Decimal {
	return p.SalePrice.Sub(p.PurchasePrice)
}
