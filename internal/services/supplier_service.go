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

type SupplierService struct {
	Suppliers *repos.SupplierRepo
}

func NewSupplierService(suppliers *repos.SupplierRepo) *SupplierService {
	return &SupplierService{Suppliers: suppliers}
}

type SupplierInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (s *SupplierService) List() ([]domain.Supplier, error) {
	out, err := s.Suppliers.List()
	return out, domain.Storage("supplier.list", err)
}

func (s *SupplierService) Get(id string) (domain.Supplier, error) {
	sup, err := s.Suppliers.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Supplier{}, domain.NotFound("supplier", id)
	}
	if err != nil {
		return domain.Supplier{}, domain.Storage("supplier.get", err)
	}
	return sup, nil
}

func (s *SupplierService) Create(in SupplierInput) (string, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return "", domain.Invalid("name", "is required")
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	now := nowStamp()
	sup := domain.Supplier{
		ID:        id,
		Name:      name,
		Contact:   strings.TrimSpace(in.Contact),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Suppliers.Insert(&sup); err != nil {
		return "", domain.Storage("supplier.create", err)
	}
	return id, nil
}

func (s *SupplierService) Update(id string, in SupplierInput) error {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Invalid("name", "is required")
	}
	sup := domain.Supplier{
		ID:        id,
		Name:      name,
		Contact:   strings.TrimSpace(in.Contact),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		UpdatedAt: nowStamp(),
	}
	n, err := s.Suppliers.Update(&sup)
	if err != nil {
		return domain.Storage("supplier.update", err)
	}
	if n == 0 {
		return domain.NotFound("supplier", id)
	}
	return nil
}

func (s *SupplierService) Delete(id string) error {
	n, err := s.Suppliers.SoftDelete(id, nowStamp())
	if err != nil {
		return domain.Storage("supplier.delete", err)
	}
	if n == 0 {
		return domain.NotFound("supplier", id)
	}
	return nil
}
