package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"posd/internal/domain"
	"posd/internal/repos"
)

type SalesService struct {
	Sales *repos.SaleRepo
}

func NewSalesService(sales *repos.SaleRepo) *SalesService {
	return &SalesService{Sales: sales}
}

type SaleItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type SaleInput struct {
	Items          []SaleItemInput `json:"items"`
	PaymentMethod  string          `json:"payment_method"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	Notes          string          `json:"notes"`
	TaxAmount      float64         `json:"tax_amount"`
	DiscountAmount float64         `json:"discount_amount"`
	SaleDate       string          `json:"sale_date"`
}

// Record validates the input, computes totals, and persists the sale with
// its items and stock decrements in one transaction (see SaleRepo.Record).
func (s *SalesService) Record(in SaleInput) (domain.Sale, error) {
	if len(in.Items) == 0 {
		return domain.Sale{}, domain.Invalid("items", "at least one item is required")
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return domain.Sale{}, domain.Invalid("items", "item is missing a product id")
		}
		if it.Quantity <= 0 {
			return domain.Sale{}, domain.Invalid("items", "quantity must be positive")
		}
		if it.UnitPrice < 0 {
			return domain.Sale{}, domain.Invalid("items", "unit price must not be negative")
		}
		in.Items[i].ProductID = strings.TrimSpace(it.ProductID)
	}

	subtotal := 0.0
	for _, it := range in.Items {
		subtotal += float64(it.Quantity) * it.UnitPrice
	}
	total := subtotal + in.TaxAmount - in.DiscountAmount

	now := nowStamp()
	saleDate := strings.TrimSpace(in.SaleDate)
	if saleDate == "" {
		saleDate = now
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = "cash"
	}

	sale := domain.Sale{
		ID:             uuid.NewString(),
		SaleDate:       saleDate,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		Subtotal:       subtotal,
		TaxAmount:      in.TaxAmount,
		DiscountAmount: in.DiscountAmount,
		TotalAmount:    total,
		PaymentMethod:  method,
		PaymentStatus:  "paid",
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
	}
	items := make([]domain.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.SaleItem{
			ID:        uuid.NewString(),
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: float64(it.Quantity) * it.UnitPrice,
		})
	}

	if err := s.Sales.Record(&sale, items); err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return domain.Sale{}, err
		}
		return domain.Sale{}, domain.Storage("sale.record", err)
	}
	sale.Items = items
	return sale, nil
}

func (s *SalesService) Get(id string) (domain.Sale, error) {
	sale, err := s.Sales.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sale{}, domain.NotFound("sale", id)
	}
	if err != nil {
		return domain.Sale{}, domain.Storage("sale.get", err)
	}
	return sale, nil
}

func (s *SalesService) History(f repos.HistoryFilters) ([]domain.Sale, error) {
	out, err := s.Sales.History(f)
	return out, domain.Storage("sale.history", err)
}

// Void removes a sale record and its items. Stock is not restored.
func (s *SalesService) Void(id string) error {
	n, err := s.Sales.Delete(id)
	if err != nil {
		return domain.Storage("sale.void", err)
	}
	if n == 0 {
		return domain.NotFound("sale", id)
	}
	return nil
}
