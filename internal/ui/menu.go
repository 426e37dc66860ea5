// internal/ui/menu.go
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/internal/core/ports"
	"github.com/ammerola/biomarket-be/internal/pkg/logger"
)

// Exporter renders the current inventory and ledger into a report file.
type Exporter interface {
	WriteFile(dir string, inventory map[string][]domain.Product, sales []domain.SaleRecord, report ports.ProfitReport) (string, error)
}

// Menu drives the interactive console loop. It is a thin caller of the
// inventory service: all parsing and re-prompting happens here, every business
// outcome (including expected failures like insufficient stock) is reported
// and the loop continues.
type Menu struct {
	svc       ports.InventoryService
	exporter  Exporter
	exportDir string
	prompter  *Prompter
	out       io.Writer
	logger    *slog.Logger
}

// NewMenu creates the interactive menu.
func NewMenu(svc ports.InventoryService, exporter Exporter, exportDir string, in io.Reader, out io.Writer, log *slog.Logger) *Menu {
	return &Menu{
		svc:       svc,
		exporter:  exporter,
		exportDir: exportDir,
		prompter:  NewPrompter(in, out),
		out:       out,
		logger:    log.With(slog.String("component", "menu")),
	}
}

// Run processes menu commands until the user exits, the input stream ends or
// ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		choice, err := m.displayMenu()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		done, err := m.handleChoice(ctx, choice)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if done {
			return nil
		}
	}
}

func (m *Menu) displayMenu() (string, error) {
	fmt.Fprint(m.out, "\n"+strings.Repeat("=", 50)+"\n")
	fmt.Fprintln(m.out, "        BIOMARKET - MAIN MENU")
	fmt.Fprintln(m.out, strings.Repeat("=", 50))
	fmt.Fprintln(m.out, "\n1. Add product")
	fmt.Fprintln(m.out, "2. Sell product")
	fmt.Fprintln(m.out, "3. Profits")
	fmt.Fprintln(m.out, "4. List stock")
	fmt.Fprintln(m.out, "5. Export report")
	fmt.Fprintln(m.out, "6. Exit")
	fmt.Fprintln(m.out, "\n"+strings.Repeat("-", 50))

	return m.prompter.NonEmptyString("\nYour choice: ")
}

func (m *Menu) handleChoice(ctx context.Context, choice string) (done bool, err error) {
	switch choice {
	case "1":
		return false, m.addProductFlow(logger.WithOperation(ctx, "add_product"))
	case "2":
		return false, m.sellProductFlow(logger.WithOperation(ctx, "sell_product"))
	case "3":
		return false, m.showProfits(logger.WithOperation(ctx, "profit_report"))
	case "4":
		return false, m.listStockFlow(logger.WithOperation(ctx, "list_stock"))
	case "5":
		return false, m.exportFlow(logger.WithOperation(ctx, "export_report"))
	case "6":
		fmt.Fprintln(m.out, "\nThanks for using BioMarket!")
		return true, nil
	default:
		fmt.Fprintln(m.out, "\n[ERROR] Invalid choice. Enter a number from 1 to 6.")
		return false, nil
	}
}

func (m *Menu) addProductFlow(ctx context.Context) error {
	warehouse, err := m.selectWarehouse(ctx)
	if err != nil {
		return err
	}

	name, err := m.prompter.NonEmptyString("\nProduct name: ")
	if err != nil {
		return err
	}
	quantity, err := m.prompter.PositiveInt("Quantity: ")
	if err != nil {
		return err
	}
	purchase, err := m.prompter.NonNegativeDecimal("Purchase price: ")
	if err != nil {
		return err
	}
	sale, err := m.prompter.NonNegativeDecimal("Sale price: ")
	if err != nil {
		return err
	}

	if err := m.svc.AddProduct(ctx, warehouse, name, quantity, purchase, sale); err != nil {
		m.reportError(ctx, "could not add the product", err)
		return nil
	}

	fmt.Fprintf(m.out, "\n[OK] Stock updated: %q x %d in warehouse %q\n", name, quantity, warehouse)
	return nil
}

func (m *Menu) sellProductFlow(ctx context.Context) error {
	warehouse, err := m.selectWarehouse(ctx)
	if err != nil {
		return err
	}

	name, err := m.prompter.NonEmptyString("\nProduct to sell: ")
	if err != nil {
		return err
	}
	quantity, err := m.prompter.PositiveInt("Quantity to sell: ")
	if err != nil {
		return err
	}

	rec, err := m.svc.SellProduct(ctx, warehouse, name, quantity)
	if err != nil {
		m.reportError(ctx, "could not complete the sale", err)
		return nil
	}

	fmt.Fprintln(m.out, "\n[OK] Sale completed successfully!")
	fmt.Fprintf(m.out, "[OK] Profit from this sale: %s\n", rec.Profit.StringFixed(2))
	return nil
}

func (m *Menu) showProfits(ctx context.Context) error {
	report, err := m.svc.ProfitReport(ctx)
	if err != nil {
		m.reportError(ctx, "could not compute profits", err)
		return nil
	}

	fmt.Fprintln(m.out, "\n"+strings.Repeat("=", 50))
	fmt.Fprintln(m.out, "              PROFITS")
	fmt.Fprintln(m.out, strings.Repeat("=", 50))
	fmt.Fprintf(m.out, "\nGross profit:  %s\n", report.Gross.StringFixed(2))
	fmt.Fprintf(m.out, "Net profit:    %s\n", report.Net.StringFixed(2))
	fmt.Fprintf(m.out, "Sales to date: %d\n", report.Sales)
	return nil
}

func (m *Menu) listStockFlow(ctx context.Context) error {
	warehouse, err := m.selectWarehouse(ctx)
	if err != nil {
		return err
	}

	products, err := m.svc.ListProducts(ctx, warehouse)
	if err != nil {
		m.reportError(ctx, "could not read the warehouse", err)
		return nil
	}
	if len(products) == 0 {
		fmt.Fprintf(m.out, "\nWarehouse %q is empty.\n", warehouse)
		return nil
	}

	fmt.Fprintf(m.out, "\nStock of warehouse %q:\n", warehouse)
	fmt.Fprintln(m.out, strings.Repeat("-", 50))
	for _, p := range products {
		fmt.Fprintf(m.out, "%-20s qty %-6d buy %-8s sell %s\n",
			p.Name, p.Quantity, p.PurchasePrice.StringFixed(2), p.SalePrice.StringFixed(2))
	}
	return nil
}

func (m *Menu) exportFlow(ctx context.Context) error {
	warehouses, err := m.svc.ListWarehouses(ctx)
	if err != nil {
		m.reportError(ctx, "could not enumerate warehouses", err)
		return nil
	}

	inventory := make(map[string][]domain.Product, len(warehouses))
	for _, w := range warehouses {
		products, err := m.svc.ListProducts(ctx, w)
		if err != nil {
			m.reportError(ctx, "could not read warehouse "+w, err)
			return nil
		}
		inventory[w] = products
	}

	sales, err := m.svc.Sales(ctx)
	if err != nil {
		m.reportError(ctx, "could not read the sales ledger", err)
		return nil
	}
	report, err := m.svc.ProfitReport(ctx)
	if err != nil {
		m.reportError(ctx, "could not compute profits", err)
		return nil
	}

	path, err := m.exporter.WriteFile(m.exportDir, inventory, sales, report)
	if err != nil {
		m.reportError(ctx, "could not write the report", err)
		return nil
	}

	fmt.Fprintf(m.out, "\n[OK] Report exported: %s\n", path)
	return nil
}

// selectWarehouse lists known warehouses and accepts either one of them or a
// new name, which creates the warehouse on first use.
func (m *Menu) selectWarehouse(ctx context.Context) (string, error) {
	warehouses, err := m.svc.ListWarehouses(ctx)
	if err != nil {
		m.reportError(ctx, "could not enumerate warehouses", err)
	}

	if len(warehouses) > 0 {
		fmt.Fprintln(m.out, "\nAvailable warehouses:")
		fmt.Fprintln(m.out, strings.Repeat("-", 50))
		for i, w := range warehouses {
			fmt.Fprintf(m.out, "%d. %s\n", i+1, w)
		}
		fmt.Fprintln(m.out, strings.Repeat("-", 50))
	} else {
		fmt.Fprintln(m.out, "\nNo existing warehouses.")
	}

	return m.prompter.NonEmptyString("\nChoose a warehouse (or enter a new name): ")
}

// reportError prints a business failure and keeps the loop alive. Expected
// outcomes get a focused message; everything else surfaces verbatim.
func (m *Menu) reportError(ctx context.Context, action string, err error) {
	switch {
	case domain.IsInsufficientStock(err):
		var ise *domain.InsufficientStockError
		errors.As(err, &ise)
		fmt.Fprintf(m.out, "\n[ERROR] Insufficient quantity! Available: %d, requested: %d\n",
			ise.Available, ise.Requested)
	case domain.IsNotFound(err):
		fmt.Fprintf(m.out, "\n[ERROR] %v\n", err)
	case domain.IsValidation(err):
		fmt.Fprintf(m.out, "\n[ERROR] %v\n", err)
	default:
		fmt.Fprintf(m.out, "\n[ERROR] %s: %v\n", action, err)
		m.logger.ErrorContext(ctx, action, slog.String("error", err.Error()))
	}
}
