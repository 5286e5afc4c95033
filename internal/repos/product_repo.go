package repos

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"posd/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, barcode, sku, category, supplier_id,
  quantity_in_stock, quantity_on_shelf,
  cost_price, selling_price, total_bulk_cost, quantity_purchased,
  reorder_level, expiry_date, images_json, variants_json, is_active,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

// List returns all active products ordered by name.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT `+productCols+`
  FROM products
  WHERE is_active = 1
  ORDER BY name COLLATE NOCASE ASC`)
	decodeAll(out)
	return out, err
}

// Search matches active products by name, sku or barcode.
func (r *ProductRepo) Search(q string) ([]domain.Product, error) {
	like := "%" + strings.ToLower(q) + "%"
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT `+productCols+`
  FROM products
  WHERE is_active = 1
    AND (LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(COALESCE(barcode,'')) LIKE ?)
  ORDER BY name COLLATE NOCASE ASC`, like, like, like)
	decodeAll(out)
	return out, err
}

// Get returns the active product with the given id. Soft-deleted rows are
// invisible here; sql.ErrNoRows is returned for both missing and inactive.
func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
  SELECT `+productCols+`
  FROM products
  WHERE id = ? AND is_active = 1`, id)
	if err == nil {
		decodeLists(&p)
	}
	return p, err
}

// Lookup fetches a row regardless of is_active. Historic sale items keep
// referencing soft-deleted products through this path.
func (r *ProductRepo) Lookup(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
  SELECT `+productCols+`
  FROM products
  WHERE id = ?`, id)
	if err == nil {
		decodeLists(&p)
	}
	return p, err
}

func (r *ProductRepo) Insert(p *domain.Product) error {
	_, err := r.db.NamedExec(`
  INSERT INTO products (
    id, name, barcode, sku, category, supplier_id,
    quantity_in_stock, quantity_on_shelf,
    cost_price, selling_price, total_bulk_cost, quantity_purchased,
    reorder_level, expiry_date, images_json, variants_json, is_active,
    created_at, updated_at
  ) VALUES (
    :id, :name, :barcode, :sku, :category, :supplier_id,
    :quantity_in_stock, :quantity_on_shelf,
    :cost_price, :selling_price, :total_bulk_cost, :quantity_purchased,
    :reorder_level, :expiry_date, :images_json, :variants_json, :is_active,
    :created_at, :updated_at
  )`, p)
	return err
}

var productUpdatable = map[string]bool{
	"name": true, "barcode": true, "sku": true, "category": true,
	"supplier_id": true, "quantity_in_stock": true, "quantity_on_shelf": true,
	"cost_price": true, "selling_price": true, "total_bulk_cost": true,
	"quantity_purchased": true, "reorder_level": true, "expiry_date": true,
	"images_json": true, "variants_json": true,
}

// Update applies the given column changes to an active row and stamps
// updated_at. Returns the number of rows affected (0 means not found).
func (r *ProductRepo) Update(id string, changes map[string]any, now string) (int64, error) {
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+2)
	for col, v := range changes {
		if !productUpdatable[col] {
			return 0, fmt.Errorf("column %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return 0, fmt.Errorf("empty change set")
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id)

	res, err := r.db.Exec(`UPDATE products SET `+strings.Join(sets, ", ")+`
  WHERE id = ? AND is_active = 1`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SoftDelete flips is_active off. The row stays behind for sale history.
func (r *ProductRepo) SoftDelete(id, now string) (int64, error) {
	res, err := r.db.Exec(`
  UPDATE products SET is_active = 0, updated_at = ?
  WHERE id = ? AND is_active = 1`, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FindConflict returns the first active product (excluding excludeID) whose
// name matches case-insensitively or whose barcode matches exactly. Name
// matches sort ahead of barcode matches.
func (r *ProductRepo) FindConflict(excludeID, name, barcode string) (*domain.Product, error) {
	conds := []string{}
	args := []any{}
	if name != "" {
		conds = append(conds, `LOWER(name) = LOWER(?)`)
		args = append(args, name)
	}
	if barcode != "" {
		conds = append(conds, `barcode = ?`)
		args = append(args, barcode)
	}
	if len(conds) == 0 {
		return nil, nil
	}

	query := `
  SELECT ` + productCols + `
  FROM products
  WHERE is_active = 1 AND id != ? AND (` + strings.Join(conds, " OR ") + `)
  ORDER BY CASE WHEN LOWER(name) = LOWER(?) THEN 0 ELSE 1 END
  LIMIT 1`
	full := append([]any{excludeID}, args...)
	full = append(full, name)

	var out []domain.Product
	if err := r.db.Select(&out, query, full...); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	decodeLists(&out[0])
	return &out[0], nil
}

// InventoryRow carries the fields inventory valuation needs.
type InventoryRow struct {
	ID                string  `db:"id"`
	QuantityInStock   int     `db:"quantity_in_stock"`
	CostPrice         float64 `db:"cost_price"`
	TotalBulkCost     float64 `db:"total_bulk_cost"`
	QuantityPurchased int     `db:"quantity_purchased"`
}

func (r *ProductRepo) InventoryRows() ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Select(&rows, `
  SELECT id, quantity_in_stock, cost_price, total_bulk_cost, quantity_purchased
  FROM products
  WHERE is_active = 1`)
	return rows, err
}

// LowStock returns active products at or under the threshold, lowest first.
func (r *ProductRepo) LowStock(threshold int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT `+productCols+`
  FROM products
  WHERE is_active = 1 AND quantity_in_stock <= ?
  ORDER BY quantity_in_stock ASC, name COLLATE NOCASE ASC`, threshold)
	decodeAll(out)
	return out, err
}

// Expiring returns active products whose expiry_date falls inside [start, end],
// compared date-only. Rows without an expiry date are excluded.
func (r *ProductRepo) Expiring(start, end string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT `+productCols+`
  FROM products
  WHERE is_active = 1
    AND expiry_date IS NOT NULL AND expiry_date != ''
    AND date(expiry_date) BETWEEN date(?) AND date(?)
  ORDER BY date(expiry_date) ASC`, start, end)
	decodeAll(out)
	return out, err
}

func decodeAll(ps []domain.Product) {
	for i := range ps {
		decodeLists(&ps[i])
	}
}

func decodeLists(p *domain.Product) {
	p.Images = decodeStrings(p.ImagesJSON)
	p.Variants = decodeStrings(p.VariantsJSON)
}

func decodeStrings(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}

// EncodeStrings serializes a list field for storage; nil becomes "[]".
func EncodeStrings(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}
