// internal/core/services/warehouse.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/internal/core/ports"
)

// Warehouse maintains the inventory of one named store location. Every
// operation re-reads the backing table before acting and every mutation is
// written through immediately, so no in-memory-only window survives a crash
// between operations. External edits to the file are honored last-writer-wins.
type Warehouse struct {
	name   string
	repo   ports.ProductRepository
	logger *slog.Logger
}

// NewWarehouse creates a warehouse service bound to one named location.
func NewWarehouse(name string, repo ports.ProductRepository, logger *slog.Logger) *Warehouse {
	return &Warehouse{
		name: name,
		repo: repo,
		logger: logger.With(
			slog.String("service", "warehouse"),
			slog.String("warehouse", name),
		),
	}
}

// Name returns the warehouse identity.
func (w *Warehouse) Name() string { return w.name }

// AddStock adds quantity of a product. An existing entry accumulates the
// quantity and takes the newly supplied prices; an unknown name creates a new
// entry at the end of the table.
func (w *Warehouse) AddStock(ctx context.Context, name string, quantity int, purchasePrice, salePrice decimal.Decimal) error {
	if quantity <= 0 {
		return &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	// Validate and canonicalize up front so the merge path cannot persist
	// invalid prices and " Apples " matches an existing "Apples".
	entry, err := domain.NewProduct(name, quantity, purchasePrice, salePrice)
	if err != nil {
		return err
	}

	products, err := w.repo.Load(ctx, w.name)
	if err != nil {
		return fmt.Errorf("failed to load warehouse %q: %w", w.name, err)
	}

	merged := false
	for i := range products {
		if products[i].Name == entry.Name {
			products[i].Restock(quantity, purchasePrice, salePrice)
			merged = true
			break
		}
	}
	if !merged {
		products = append(products, entry)
	}

	if err := w.repo.Save(ctx, w.name, products); err != nil {
		return fmt.Errorf("failed to save warehouse %q: %w", w.name, err)
	}

	w.logger.InfoContext(ctx, "stock added",
		slog.String("product", entry.Name),
		slog.Int("quantity", quantity),
		slog.Bool("merged", merged))
	return nil
}

// DeductStock removes quantity units of a product and returns a snapshot of
// the entry carrying the prices in force at the time of the call, so callers
// can compute profit without a second lookup. The quantity is never driven
// negative; failures leave the table untouched.
func (w *Warehouse) DeductStock(ctx context.Context, name string, quantity int) (domain.Product, error) {
	if quantity <= 0 {
		return domain.Product{}, &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	products, err := w.repo.Load(ctx, w.name)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to load warehouse %q: %w", w.name, err)
	}

	idx := -1
	for i := range products {
		if products[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Product{}, &domain.NotFoundError{Kind: "product", Name: name}
	}

	if err := products[idx].Deduct(quantity); err != nil {
		return domain.Product{}, err
	}

	if err := w.repo.Save(ctx, w.name, products); err != nil {
		return domain.Product{}, fmt.Errorf("failed to save warehouse %q: %w", w.name, err)
	}

	w.logger.InfoContext(ctx, "stock deducted",
		slog.String("product", name),
		slog.Int("quantity", quantity),
		slog.Int("remaining", products[idx].Quantity))
	return products[idx], nil
}

// Find looks up one product by its case-sensitive name.
func (w *Warehouse) Find(ctx context.Context, name string) (domain.Product, error) {
	products, err := w.repo.Load(ctx, w.name)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to load warehouse %q: %w", w.name, err)
	}
	for _, p := range products {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Product{}, &domain.NotFoundError{Kind: "product", Name: name}
}

// Products returns the full stock in table order.
func (w *Warehouse) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := w.repo.Load(ctx, w.name)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse %q: %w", w.name, err)
	}
	return products, nil
}
