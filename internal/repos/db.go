package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "posd/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Single connection: keeps PRAGMAs in force for every statement and
	// matches sqlite's one-writer model.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// A migration is one idempotent schema step. Critical steps (core table
// creation) abort startup on failure; additive patches are logged, skipped,
// and recorded so they are not retried on every start.
type migration struct {
	version  int
	name     string
	critical bool
	apply    func(*sqlx.DB) error
}

var migrations = []migration{
	{1, "baseline", true, applyBaseline},
	{2, "product bulk purchase tracking", false, func(db *sqlx.DB) error {
		return addColumns(db, "products",
			col{"quantity_on_shelf", "INTEGER NOT NULL DEFAULT 0"},
			col{"total_bulk_cost", "NUMERIC NOT NULL DEFAULT 0"},
			col{"quantity_purchased", "INTEGER NOT NULL DEFAULT 0"},
		)
	}},
	{3, "product variants", false, func(db *sqlx.DB) error {
		return addColumns(db, "products", col{"variants_json", "TEXT NOT NULL DEFAULT '[]'"})
	}},
	{4, "sale payment status", false, func(db *sqlx.DB) error {
		return addColumns(db, "sales", col{"payment_status", "TEXT NOT NULL DEFAULT 'paid'"})
	}},
}

// Migrate applies, in order, every migration not yet recorded in
// schema_migrations. Running it again is a no-op.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations(
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return err
	}

	for _, m := range migrations {
		var n int
		if err := db.Get(&n, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.version); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := m.apply(db); err != nil {
			if m.critical {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
			}
			applog.Warn(nil, "migrate.skip", map[string]any{
				"version": m.version, "name": m.name, "error": err.Error(),
			})
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations(version, name, applied_at)
			VALUES(?, ?, datetime('now'))`, m.version, m.name); err != nil {
			return err
		}
	}
	return nil
}

func applyBaseline(db *sqlx.DB) error {
	schema := `
-- Suppliers
CREATE TABLE IF NOT EXISTS suppliers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT,
  updated_at TEXT
);

-- Products (soft-deleted via is_active; rows are never removed)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  barcode TEXT,
  sku TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  supplier_id TEXT REFERENCES suppliers(id),
  quantity_in_stock INTEGER NOT NULL DEFAULT 0,
  cost_price NUMERIC NOT NULL DEFAULT 0,
  selling_price NUMERIC NOT NULL DEFAULT 0,
  reorder_level INTEGER NOT NULL DEFAULT 10,
  expiry_date TEXT,
  images_json TEXT NOT NULL DEFAULT '[]',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name  ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_stock ON products(quantity_in_stock);
CREATE INDEX IF NOT EXISTS idx_products_expiry ON products(expiry_date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_barcode
  ON products(barcode) WHERE barcode IS NOT NULL AND barcode != '';

-- Sales
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  sale_date TEXT NOT NULL,
  customer_name TEXT NOT NULL DEFAULT '',
  customer_phone TEXT NOT NULL DEFAULT '',
  subtotal NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  payment_method TEXT NOT NULL DEFAULT 'cash',
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);

CREATE TABLE IF NOT EXISTS sale_items(
  id TEXT PRIMARY KEY,
  sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  tax NUMERIC NOT NULL DEFAULT 0,
  discount NUMERIC NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sale_items_sale    ON sale_items(sale_id);
CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items(product_id);

-- Settings
CREATE TABLE IF NOT EXISTS settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL DEFAULT '',
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

type col struct{ name, ddl string }

// addColumns appends missing columns to an existing table. Columns already
// present are left untouched; nothing is ever dropped or renamed.
func addColumns(db *sqlx.DB, table string, cols ...col) error {
	existing, err := tableColumns(db, table)
	if err != nil {
		return err
	}
	for _, c := range cols {
		if existing[c.name] {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, c.name, c.ddl)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("add %s.%s: %w", table, c.name, err)
		}
	}
	return nil
}

func tableColumns(db *sqlx.DB, table string) (map[string]bool, error) {
	var names []string
	if err := db.Select(&names, `SELECT name FROM pragma_table_info(?)`, table); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}
