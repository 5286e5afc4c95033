package services

import (
	"strings"

	"posd/internal/domain"
	"posd/internal/repos"
	"posd/internal/validate"
)

// ReportService derives read-side aggregates from current product and sale
// state. Nothing is cached; every call recomputes from the database.
type ReportService struct {
	Products *repos.ProductRepo
	Sales    *repos.SaleRepo
}

func NewReportService(products *repos.ProductRepo, sales *repos.SaleRepo) *ReportService {
	return &ReportService{Products: products, Sales: sales}
}

func (s *ReportService) SalesByDateRange(start, end string) ([]domain.Sale, error) {
	st, ok := validate.Date(start)
	if !ok {
		return nil, domain.Invalid("start", "must be YYYY-MM-DD")
	}
	en, ok := validate.Date(end)
	if !ok {
		return nil, domain.Invalid("end", "must be YYYY-MM-DD")
	}
	out, err := s.Sales.ByDateRange(st, en)
	return out, domain.Storage("report.sales_by_range", err)
}

func (s *ReportService) LowStockItems(threshold int) ([]domain.Product, error) {
	if threshold < 0 {
		return nil, domain.Invalid("threshold", "must not be negative")
	}
	out, err := s.Products.LowStock(threshold)
	return out, domain.Storage("report.low_stock", err)
}

func (s *ReportService) ExpiringProducts(start, end string) ([]domain.Product, error) {
	st, ok := validate.Date(start)
	if !ok {
		return nil, domain.Invalid("start", "must be YYYY-MM-DD")
	}
	en, ok := validate.Date(end)
	if !ok {
		return nil, domain.Invalid("end", "must be YYYY-MM-DD")
	}
	out, err := s.Products.Expiring(st, en)
	return out, domain.Storage("report.expiring", err)
}

// InventoryValue sums quantity_in_stock x unit cost over active products.
// Unit cost falls back from cost_price to total_bulk_cost/quantity_purchased;
// a product with neither contributes zero.
func (s *ReportService) InventoryValue() (float64, error) {
	rows, err := s.Products.InventoryRows()
	if err != nil {
		return 0, domain.Storage("report.inventory_value", err)
	}
	total := 0.0
	for _, r := range rows {
		total += float64(r.QuantityInStock) * unitCost(r)
	}
	return total, nil
}

func unitCost(r repos.InventoryRow) float64 {
	if r.CostPrice > 0 {
		return r.CostPrice
	}
	if r.TotalBulkCost > 0 && r.QuantityPurchased > 0 {
		return r.TotalBulkCost / float64(r.QuantityPurchased)
	}
	return 0
}

type SalesSummary struct {
	Count       int     `json:"count"`
	Revenue     float64 `json:"revenue"`
	AverageSale float64 `json:"average_sale"`
}

func (s *ReportService) Summary(start, end string) (SalesSummary, error) {
	st, ok := validate.Date(start)
	if !ok {
		return SalesSummary{}, domain.Invalid("start", "must be YYYY-MM-DD")
	}
	en, ok := validate.Date(end)
	if !ok {
		return SalesSummary{}, domain.Invalid("end", "must be YYYY-MM-DD")
	}
	n, revenue, err := s.Sales.RangeTotals(st, en)
	if err != nil {
		return SalesSummary{}, domain.Storage("report.summary", err)
	}
	out := SalesSummary{Count: n, Revenue: revenue}
	if n > 0 {
		out.AverageSale = revenue / float64(n)
	}
	return out, nil
}

// NormalizeCategory lowercases and collapses whitespace runs to hyphens,
// so "Health Care" and "health-care" compare equal.
func NormalizeCategory(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "-")
}

func FilterByCategory(products []domain.Product, category string) []domain.Product {
	want := NormalizeCategory(category)
	if want == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if NormalizeCategory(p.Category) == want {
			out = append(out, p)
		}
	}
	return out
}
