package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"posd/internal/domain"
	"posd/internal/repos"
	"posd/internal/validate"
)

type ProductService struct {
	Products *repos.ProductRepo
}

func NewProductService(products *repos.ProductRepo) *ProductService {
	return &ProductService{Products: products}
}

// ProductInput is the create payload. Absent quantity/price fields default
// to zero; reorder level defaults to 10.
type ProductInput struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Barcode           string   `json:"barcode"`
	SKU               string   `json:"sku"`
	Category          string   `json:"category"`
	SupplierID        string   `json:"supplier_id"`
	QuantityInStock   int      `json:"quantity_in_stock"`
	QuantityOnShelf   int      `json:"quantity_on_shelf"`
	CostPrice         float64  `json:"cost_price"`
	SellingPrice      float64  `json:"selling_price"`
	TotalBulkCost     float64  `json:"total_bulk_cost"`
	QuantityPurchased int      `json:"quantity_purchased"`
	ReorderLevel      int      `json:"reorder_level"`
	ExpiryDate        string   `json:"expiry_date"`
	Images            []string `json:"images"`
	Variants          []string `json:"variants"`
}

func (s *ProductService) List() ([]domain.Product, error) {
	out, err := s.Products.List()
	return out, domain.Storage("product.list", err)
}

func (s *ProductService) Search(q string) ([]domain.Product, error) {
	out, err := s.Products.Search(q)
	return out, domain.Storage("product.search", err)
}

func (s *ProductService) Get(id string) (domain.Product, error) {
	p, err := s.Products.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFound("product", id)
	}
	if err != nil {
		return domain.Product{}, domain.Storage("product.get", err)
	}
	return p, nil
}

func (s *ProductService) Create(in ProductInput) (string, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return "", domain.Invalid("name", "is required")
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	reorder := in.ReorderLevel
	if reorder <= 0 {
		reorder = 10
	}

	var barcode *string
	if b := strings.TrimSpace(in.Barcode); b != "" {
		if _, ok := validate.Barcode(b); !ok {
			return "", domain.Invalid("barcode", "contains invalid characters")
		}
		barcode = &b
	}
	var expiry *string
	if e := strings.TrimSpace(in.ExpiryDate); e != "" {
		d, ok := validate.Date(e)
		if !ok {
			return "", domain.Invalid("expiry_date", "must be YYYY-MM-DD")
		}
		expiry = &d
	}
	var supplier *string
	if sp := strings.TrimSpace(in.SupplierID); sp != "" {
		supplier = &sp
	}

	now := nowStamp()
	p := domain.Product{
		ID:                id,
		Name:              name,
		Barcode:           barcode,
		SKU:               strings.TrimSpace(in.SKU),
		Category:          strings.TrimSpace(in.Category),
		SupplierID:        supplier,
		QuantityInStock:   in.QuantityInStock,
		QuantityOnShelf:   in.QuantityOnShelf,
		CostPrice:         in.CostPrice,
		SellingPrice:      in.SellingPrice,
		TotalBulkCost:     in.TotalBulkCost,
		QuantityPurchased: in.QuantityPurchased,
		ReorderLevel:      reorder,
		ExpiryDate:        expiry,
		ImagesJSON:        repos.EncodeStrings(in.Images),
		VariantsJSON:      repos.EncodeStrings(in.Variants),
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Products.Insert(&p); err != nil {
		return "", domain.Storage("product.create", err)
	}
	return id, nil
}

// ProductChanges is a sparse change set: nil fields are left untouched.
type ProductChanges struct {
	Name              *string   `json:"name"`
	Barcode           *string   `json:"barcode"`
	SKU               *string   `json:"sku"`
	Category          *string   `json:"category"`
	SupplierID        *string   `json:"supplier_id"`
	QuantityInStock   *int      `json:"quantity_in_stock"`
	QuantityOnShelf   *int      `json:"quantity_on_shelf"`
	CostPrice         *float64  `json:"cost_price"`
	SellingPrice      *float64  `json:"selling_price"`
	TotalBulkCost     *float64  `json:"total_bulk_cost"`
	QuantityPurchased *int      `json:"quantity_purchased"`
	ReorderLevel      *int      `json:"reorder_level"`
	ExpiryDate        *string   `json:"expiry_date"`
	Images            *[]string `json:"images"`
	Variants          *[]string `json:"variants"`
}

func (s *ProductService) Update(id string, ch ProductChanges) error {
	set := map[string]any{}
	if ch.Name != nil {
		name, ok := validate.Name(*ch.Name)
		if !ok {
			return domain.Invalid("name", "is required")
		}
		set["name"] = name
	}
	if ch.Barcode != nil {
		if b := strings.TrimSpace(*ch.Barcode); b != "" {
			if _, ok := validate.Barcode(b); !ok {
				return domain.Invalid("barcode", "contains invalid characters")
			}
			set["barcode"] = b
		} else {
			set["barcode"] = nil
		}
	}
	if ch.SKU != nil {
		set["sku"] = strings.TrimSpace(*ch.SKU)
	}
	if ch.Category != nil {
		set["category"] = strings.TrimSpace(*ch.Category)
	}
	if ch.SupplierID != nil {
		// Empty clears the reference; the column is a nullable FK, so the
		// cleared value must be NULL, not ''.
		if sp := strings.TrimSpace(*ch.SupplierID); sp != "" {
			set["supplier_id"] = sp
		} else {
			set["supplier_id"] = nil
		}
	}
	if ch.QuantityInStock != nil {
		set["quantity_in_stock"] = *ch.QuantityInStock
	}
	if ch.QuantityOnShelf != nil {
		set["quantity_on_shelf"] = *ch.QuantityOnShelf
	}
	if ch.CostPrice != nil {
		set["cost_price"] = *ch.CostPrice
	}
	if ch.SellingPrice != nil {
		set["selling_price"] = *ch.SellingPrice
	}
	if ch.TotalBulkCost != nil {
		set["total_bulk_cost"] = *ch.TotalBulkCost
	}
	if ch.QuantityPurchased != nil {
		set["quantity_purchased"] = *ch.QuantityPurchased
	}
	if ch.ReorderLevel != nil {
		set["reorder_level"] = *ch.ReorderLevel
	}
	if ch.ExpiryDate != nil {
		e := strings.TrimSpace(*ch.ExpiryDate)
		if e != "" {
			d, ok := validate.Date(e)
			if !ok {
				return domain.Invalid("expiry_date", "must be YYYY-MM-DD")
			}
			e = d
		}
		set["expiry_date"] = e
	}
	if ch.Images != nil {
		set["images_json"] = repos.EncodeStrings(*ch.Images)
	}
	if ch.Variants != nil {
		set["variants_json"] = repos.EncodeStrings(*ch.Variants)
	}
	if len(set) == 0 {
		return domain.Invalid("changes", "empty change set")
	}

	n, err := s.Products.Update(id, set, nowStamp())
	if err != nil {
		return domain.Storage("product.update", err)
	}
	if n == 0 {
		return domain.NotFound("product", id)
	}
	return nil
}

func (s *ProductService) Delete(id string) error {
	n, err := s.Products.SoftDelete(id, nowStamp())
	if err != nil {
		return domain.Storage("product.delete", err)
	}
	if n == 0 {
		return domain.NotFound("product", id)
	}
	return nil
}

// DuplicateCheck carries the fields compared against existing products.
// ID, when set, excludes the product being edited from the comparison.
type DuplicateCheck struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Barcode string `json:"barcode"`
}

// CheckDuplicate returns the conflicting product, or nil when clear.
func (s *ProductService) CheckDuplicate(in DuplicateCheck) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	barcode := strings.TrimSpace(in.Barcode)
	if name == "" && barcode == "" {
		return nil, domain.Invalid("check", "name or barcode required")
	}
	p, err := s.Products.FindConflict(strings.TrimSpace(in.ID), name, barcode)
	if err != nil {
		return nil, domain.Storage("product.check_duplicate", err)
	}
	return p, nil
}
