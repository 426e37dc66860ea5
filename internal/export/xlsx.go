// internal/export/xlsx.go
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/biomarket-be/internal/adapters/flatfile"
	"github.com/ammerola/biomarket-be/internal/core/domain"
	"github.com/ammerola/biomarket-be/internal/core/ports"
)

var (
	inventoryHeaders = []string{"Warehouse", "Product", "Quantity", "Purchase Price", "Sale Price"}
	salesHeaders     = []string{"Product", "Quantity Sold", "Unit Purchase Price", "Unit Sale Price", "Profit", "Sold At"}
)

// ReportWriter renders the full state of the system into an Excel workbook:
// one sheet for inventory across all warehouses, one for the sales ledger and
// one for the profit summary.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates an Excel report writer.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	return &ReportWriter{
		logger: logger.With(slog.String("component", "export")),
	}
}

// WriteFile renders the workbook into dir and returns the generated file path.
func (rw *ReportWriter) WriteFile(dir string, inventory map[string][]domain.Product, sales []domain.SaleRecord, report ports.ProfitReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}

	name := fmt.Sprintf("biomarket_report_%s.xlsx", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", &domain.StorageError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	if err := rw.Write(f, inventory, sales, report); err != nil {
		return "", err
	}

	rw.logger.Info("report exported",
		slog.String("path", path),
		slog.Int("warehouses", len(inventory)),
		slog.Int("sales", len(sales)))
	return path, nil
}

// Write renders the workbook to w.
func (rw *ReportWriter) Write(w io.Writer, inventory map[string][]domain.Product, sales []domain.SaleRecord, report ports.ProfitReport) error {
	file := xlsx.NewFile()

	if err := addInventorySheet(file, inventory); err != nil {
		return err
	}
	if err := addSalesSheet(file, sales); err != nil {
		return err
	}
	if err := addProfitSheet(file, report); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addInventorySheet(file *xlsx.File, inventory map[string][]domain.Product) error {
	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}
	addHeaderRow(sheet, inventoryHeaders)

	for warehouse, products := range inventory {
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().Value = warehouse
			row.AddCell().Value = p.Name
			row.AddCell().SetInt(p.Quantity)
			row.AddCell().Value = p.PurchasePrice.String()
			row.AddCell().Value = p.SalePrice.String()
		}
	}
	fitColumns(sheet, len(inventoryHeaders))
	return nil
}

func addSalesSheet(file *xlsx.File, sales []domain.SaleRecord) error {
	sheet, err := file.AddSheet("Sales")
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}
	addHeaderRow(sheet, salesHeaders)

	for _, s := range sales {
		row := sheet.AddRow()
		row.AddCell().Value = s.ProductName
		row.AddCell().SetInt(s.QuantitySold)
		row.AddCell().Value = s.UnitPurchasePrice.String()
		row.AddCell().Value = s.UnitSalePrice.String()
		row.AddCell().Value = s.Profit.String()
		row.AddCell().Value = s.SoldAt.Format(flatfile.SaleTimeLayout)
	}
	fitColumns(sheet, len(salesHeaders))
	return nil
}

func addProfitSheet(file *xlsx.File, report ports.ProfitReport) error {
	sheet, err := file.AddSheet("Profit")
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	rows := [][2]string{
		{"Gross Profit", report.Gross.String()},
		{"Net Profit", report.Net.String()},
		{"Recorded Sales", fmt.Sprintf("%d", report.Sales)},
	}
	for _, r := range rows {
		row := sheet.AddRow()
		label := row.AddCell()
		label.Value = r[0]
		label.GetStyle().Font.Bold = true
		row.AddCell().Value = r[1]
	}
	fitColumns(sheet, 2)
	return nil
}

func addHeaderRow(sheet *xlsx.Sheet, headers []string) {
	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}
}

func fitColumns(sheet *xlsx.Sheet, n int) {
	for i := 1; i <= n; i++ {
		sheet.SetColWidth(i, i, 18)
	}
}
