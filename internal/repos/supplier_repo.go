package repos

import (
	"github.com/jmoiron/sqlx"

	"posd/internal/domain"
)

type SupplierRepo struct{ db *sqlx.DB }

func NewSupplierRepo(db *sqlx.DB) *SupplierRepo { return &SupplierRepo{db: db} }

const supplierCols = `
  id, name, contact, phone, email, address, is_active,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

func (r *SupplierRepo) List() ([]domain.Supplier, error) {
	var out []domain.Supplier
	err := r.db.Select(&out, `
  SELECT `+supplierCols+`
  FROM suppliers
  WHERE is_active = 1
  ORDER BY name COLLATE NOCASE ASC`)
	return out, err
}

func (r *SupplierRepo) Get(id string) (domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.Get(&s, `
  SELECT `+supplierCols+`
  FROM suppliers
  WHERE id = ? AND is_active = 1`, id)
	return s, err
}

func (r *SupplierRepo) Insert(s *domain.Supplier) error {
	_, err := r.db.NamedExec(`
  INSERT INTO suppliers (id, name, contact, phone, email, address, is_active, created_at, updated_at)
  VALUES (:id, :name, :contact, :phone, :email, :address, :is_active, :created_at, :updated_at)`, s)
	return err
}

func (r *SupplierRepo) Update(s *domain.Supplier) (int64, error) {
	res, err := r.db.NamedExec(`
  UPDATE suppliers
  SET name = :name, contact = :contact, phone = :phone, email = :email,
      address = :address, updated_at = :updated_at
  WHERE id = :id AND is_active = 1`, s)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SupplierRepo) SoftDelete(id, now string) (int64, error) {
	res, err := r.db.Exec(`
  UPDATE suppliers SET is_active = 0, updated_at = ?
  WHERE id = ? AND is_active = 1`, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
