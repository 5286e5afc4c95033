package repos

import (
	"github.com/jmoiron/sqlx"

	"posd/internal/domain"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// Record persists a sale, its line items, and the per-product stock
// decrements as one transaction. Any failure rolls the whole sale back;
// readers never observe a partial sale. Stock is decremented without a
// floor; going negative is allowed and left to business policy.
func (r *SaleRepo) Record(s *domain.Sale, items []domain.SaleItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExec(`
  INSERT INTO sales (
    id, sale_date, customer_name, customer_phone,
    subtotal, tax_amount, discount_amount, total_amount,
    payment_method, payment_status, notes, created_at
  ) VALUES (
    :id, :sale_date, :customer_name, :customer_phone,
    :subtotal, :tax_amount, :discount_amount, :total_amount,
    :payment_method, :payment_status, :notes, :created_at
  )`, s); err != nil {
		return err
	}

	for i := range items {
		it := &items[i]
		if _, err := tx.NamedExec(`
  INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, line_total, tax, discount)
  VALUES (:id, :sale_id, :product_id, :quantity, :unit_price, :line_total, :tax, :discount)`, it); err != nil {
			return err
		}

		res, err := tx.Exec(`
  UPDATE products
  SET quantity_in_stock = quantity_in_stock - ?, updated_at = ?
  WHERE id = ?`, it.Quantity, s.CreatedAt, it.ProductID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.NotFound("product", it.ProductID)
		}
	}

	return tx.Commit()
}

const saleCols = `
  id, sale_date, customer_name, customer_phone,
  subtotal, tax_amount, discount_amount, total_amount,
  payment_method, payment_status, notes, COALESCE(created_at,'') AS created_at`

func (r *SaleRepo) Get(id string) (domain.Sale, error) {
	var s domain.Sale
	if err := r.db.Get(&s, `SELECT `+saleCols+` FROM sales WHERE id = ?`, id); err != nil {
		return domain.Sale{}, err
	}
	items, err := r.Items(id)
	if err != nil {
		return domain.Sale{}, err
	}
	s.Items = items
	return s, nil
}

func (r *SaleRepo) Items(saleID string) ([]domain.SaleItem, error) {
	var items []domain.SaleItem
	err := r.db.Select(&items, `
  SELECT id, sale_id, product_id, quantity, unit_price, line_total, tax, discount
  FROM sale_items
  WHERE sale_id = ?
  ORDER BY id`, saleID)
	return items, err
}

// ByDateRange returns sales whose sale_date lies in [start, end] inclusive
// (date-only comparison), newest first, each with its line items attached.
func (r *SaleRepo) ByDateRange(start, end string) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.Select(&sales, `
  SELECT `+saleCols+`
  FROM sales
  WHERE date(sale_date) BETWEEN date(?) AND date(?)
  ORDER BY datetime(sale_date) DESC`, start, end)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		items, err := r.Items(sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

// HistoryFilters narrows the sales listing. Zero values mean "no filter".
type HistoryFilters struct {
	Start         string
	End           string
	PaymentMethod string
	Limit         int
}

func (r *SaleRepo) History(f HistoryFilters) ([]domain.Sale, error) {
	where := `1=1`
	args := []any{}
	if f.Start != "" {
		where += ` AND date(sale_date) >= date(?)`
		args = append(args, f.Start)
	}
	if f.End != "" {
		where += ` AND date(sale_date) <= date(?)`
		args = append(args, f.End)
	}
	if f.PaymentMethod != "" {
		where += ` AND payment_method = ?`
		args = append(args, f.PaymentMethod)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 200
	}
	args = append(args, limit)

	var sales []domain.Sale
	err := r.db.Select(&sales, `
  SELECT `+saleCols+`
  FROM sales
  WHERE `+where+`
  ORDER BY datetime(sale_date) DESC
  LIMIT ?`, args...)
	return sales, err
}

// RangeTotals returns sale count and revenue for [start, end] inclusive.
func (r *SaleRepo) RangeTotals(start, end string) (int, float64, error) {
	var row struct {
		N       int     `db:"n"`
		Revenue float64 `db:"revenue"`
	}
	err := r.db.Get(&row, `
  SELECT COUNT(*) AS n, COALESCE(SUM(total_amount), 0) AS revenue
  FROM sales
  WHERE date(sale_date) BETWEEN date(?) AND date(?)`, start, end)
	return row.N, row.Revenue, err
}

// Delete removes a sale; sale_items go with it via ON DELETE CASCADE.
// Stock is not restored; voiding a sale is a bookkeeping correction.
func (r *SaleRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
