package domain

// Product is the canonical catalog row. List-valued fields (images, variants)
// are persisted as JSON text and decoded at the repo boundary.
type Product struct {
	ID                string   `db:"id" json:"id"`
	Name              string   `db:"name" json:"name"`
	Barcode           *string  `db:"barcode" json:"barcode,omitempty"`
	SKU               string   `db:"sku" json:"sku"`
	Category          string   `db:"category" json:"category"`
	SupplierID        *string  `db:"supplier_id" json:"supplier_id,omitempty"`
	QuantityInStock   int      `db:"quantity_in_stock" json:"quantity_in_stock"`
	QuantityOnShelf   int      `db:"quantity_on_shelf" json:"quantity_on_shelf"`
	CostPrice         float64  `db:"cost_price" json:"cost_price"`
	SellingPrice      float64  `db:"selling_price" json:"selling_price"`
	TotalBulkCost     float64  `db:"total_bulk_cost" json:"total_bulk_cost"`
	QuantityPurchased int      `db:"quantity_purchased" json:"quantity_purchased"`
	ReorderLevel      int      `db:"reorder_level" json:"reorder_level"`
	ExpiryDate        *string  `db:"expiry_date" json:"expiry_date,omitempty"` // YYYY-MM-DD
	ImagesJSON        string   `db:"images_json" json:"-"`
	VariantsJSON      string   `db:"variants_json" json:"-"`
	Images            []string `db:"-" json:"images"`
	Variants          []string `db:"-" json:"variants"`
	IsActive          bool     `db:"is_active" json:"is_active"`
	CreatedAt         string   `db:"created_at" json:"created_at"`
	UpdatedAt         string   `db:"updated_at" json:"updated_at"`
}

type Sale struct {
	ID             string     `db:"id" json:"id"`
	SaleDate       string     `db:"sale_date" json:"sale_date"`
	CustomerName   string     `db:"customer_name" json:"customer_name"`
	CustomerPhone  string     `db:"customer_phone" json:"customer_phone"`
	Subtotal       float64    `db:"subtotal" json:"subtotal"`
	TaxAmount      float64    `db:"tax_amount" json:"tax_amount"`
	DiscountAmount float64    `db:"discount_amount" json:"discount_amount"`
	TotalAmount    float64    `db:"total_amount" json:"total_amount"`
	PaymentMethod  string     `db:"payment_method" json:"payment_method"`
	PaymentStatus  string     `db:"payment_status" json:"payment_status"`
	Notes          string     `db:"notes" json:"notes"`
	CreatedAt      string     `db:"created_at" json:"created_at"`
	Items          []SaleItem `db:"-" json:"items,omitempty"`
}

type SaleItem struct {
	ID        string  `db:"id" json:"id"`
	SaleID    string  `db:"sale_id" json:"sale_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
	LineTotal float64 `db:"line_total" json:"line_total"`
	Tax       float64 `db:"tax" json:"tax"`
	Discount  float64 `db:"discount" json:"discount"`
}

type Supplier struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Contact   string `db:"contact" json:"contact"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
	Address   string `db:"address" json:"address"`
	IsActive  bool   `db:"is_active" json:"is_active"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// Setting values are opaque text; callers serialize structured values
// before Set and parse after Get.
type Setting struct {
	Key       string `db:"key" json:"key"`
	Value     string `db:"value" json:"value"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}
