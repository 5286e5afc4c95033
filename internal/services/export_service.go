package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"posd/internal/domain"
)

// ExportService renders report rows into xlsx artifacts under Dir.
type ExportService struct {
	Dir string
}

func NewExportService(dir string) *ExportService { return &ExportService{Dir: dir} }

var salesHeaders = []string{
	"Sale ID", "Date", "Customer", "Payment Method", "Items",
	"Subtotal", "Tax", "Discount", "Total",
}

// Monetary columns F..I get the currency format and a summed totals row.
const firstMoneyCol, lastMoneyCol = 6, 9

// WriteSalesReport produces one sheet: a header row, one row per sale, and a
// totals row summing the monetary columns. An empty input still produces an
// artifact with a "no data" placeholder. Returns the artifact path.
func (s *ExportService) WriteSalesReport(sales []domain.Sale) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sales"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	numFmt := "#,##0.00"
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return "", err
	}

	for i, h := range salesHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(salesHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", endHeader, bold); err != nil {
		return "", err
	}

	if len(sales) == 0 {
		if err := f.SetCellValue(sheet, "A2", "No data for the selected period"); err != nil {
			return "", err
		}
		return s.save(f)
	}

	var sumSubtotal, sumTax, sumDiscount, sumTotal float64
	for i, sale := range sales {
		row := i + 2
		vals := []any{
			sale.ID, sale.SaleDate, sale.CustomerName, sale.PaymentMethod,
			len(sale.Items), sale.Subtotal, sale.TaxAmount, sale.DiscountAmount, sale.TotalAmount,
		}
		for c, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
		}
		sumSubtotal += sale.Subtotal
		sumTax += sale.TaxAmount
		sumDiscount += sale.DiscountAmount
		sumTotal += sale.TotalAmount
	}

	lastDataRow := len(sales) + 1
	totalsRow := lastDataRow + 1
	label, _ := excelize.CoordinatesToCellName(1, totalsRow)
	if err := f.SetCellValue(sheet, label, "Total"); err != nil {
		return "", err
	}
	for c, v := range map[int]float64{
		firstMoneyCol: sumSubtotal, firstMoneyCol + 1: sumTax,
		firstMoneyCol + 2: sumDiscount, lastMoneyCol: sumTotal,
	} {
		cell, _ := excelize.CoordinatesToCellName(c, totalsRow)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return "", err
		}
	}

	moneyStart, _ := excelize.CoordinatesToCellName(firstMoneyCol, 2)
	moneyEnd, _ := excelize.CoordinatesToCellName(lastMoneyCol, totalsRow)
	if err := f.SetCellStyle(sheet, moneyStart, moneyEnd, currency); err != nil {
		return "", err
	}
	totalsStart, _ := excelize.CoordinatesToCellName(1, totalsRow)
	if err := f.SetCellStyle(sheet, totalsStart, totalsStart, bold); err != nil {
		return "", err
	}

	return s.save(f)
}

func (s *ExportService) save(f *excelize.File) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("sales-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(s.Dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
