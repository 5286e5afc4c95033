package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"posd/internal/domain"
	"posd/internal/repos"
	"posd/internal/services"
)

func memdb(t *testing.T) (*repos.ProductRepo, *services.ProductService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := repos.NewProductRepo(db)
	return repo, services.NewProductService(repo)
}

func TestProduct_Create_Defaults(t *testing.T) {
	_, svc := memdb(t)

	id, err := svc.Create(services.ProductInput{Name: "Aspirin 500mg"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if p.QuantityInStock != 0 || p.CostPrice != 0 || p.SellingPrice != 0 {
		t.Fatalf("quantity/price fields should default to zero: %+v", p)
	}
	if p.ReorderLevel != 10 {
		t.Fatalf("want reorder level 10, got %d", p.ReorderLevel)
	}
	if !p.IsActive {
		t.Fatal("created product must be active")
	}
	if p.CreatedAt == "" || p.CreatedAt != p.UpdatedAt {
		t.Fatalf("want created_at == updated_at, got %q / %q", p.CreatedAt, p.UpdatedAt)
	}
}

func TestProduct_Create_RequiresName(t *testing.T) {
	_, svc := memdb(t)
	_, err := svc.Create(services.ProductInput{Name: "   "})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestProduct_Images_RoundTrip(t *testing.T) {
	_, svc := memdb(t)
	id, err := svc.Create(services.ProductInput{
		Name:   "Bandages",
		Images: []string{"a.png", "b.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Images) != 2 || p.Images[0] != "a.png" || p.Images[1] != "b.png" {
		t.Fatalf("images did not round-trip in order: %v", p.Images)
	}
}

func TestProduct_SoftDelete_HiddenButRetained(t *testing.T) {
	repo, svc := memdb(t)
	id, err := svc.Create(services.ProductInput{Name: "Old Stock"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(id); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(id); err == nil {
		t.Fatal("Get must not return a soft-deleted product")
	}
	list, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range list {
		if p.ID == id {
			t.Fatal("List must not include a soft-deleted product")
		}
	}

	// The row survives for sale history references.
	p, err := repo.Lookup(id)
	if err != nil {
		t.Fatalf("soft-deleted row must remain queryable internally: %v", err)
	}
	if p.IsActive {
		t.Fatal("lookup row should be inactive")
	}

	// Deleting twice is NotFound.
	var nf *domain.NotFoundError
	if err := svc.Delete(id); !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestProduct_Update_StampsAndNotFound(t *testing.T) {
	_, svc := memdb(t)
	id, err := svc.Create(services.ProductInput{Name: "Gauze"})
	if err != nil {
		t.Fatal(err)
	}

	qty := 42
	if err := svc.Update(id, services.ProductChanges{QuantityInStock: &qty}); err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if p.QuantityInStock != 42 {
		t.Fatalf("want stock 42, got %d", p.QuantityInStock)
	}

	var nf *domain.NotFoundError
	if err := svc.Update("nope", services.ProductChanges{QuantityInStock: &qty}); !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
	var ve *domain.ValidationError
	if err := svc.Update(id, services.ProductChanges{}); !errors.As(err, &ve) {
		t.Fatalf("empty change set: want ValidationError, got %v", err)
	}
}

func TestProduct_Update_ClearSupplier(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	supSvc := services.NewSupplierService(repos.NewSupplierRepo(db))
	prodSvc := services.NewProductService(repos.NewProductRepo(db))

	supID, err := supSvc.Create(services.SupplierInput{Name: "Acme Wholesale"})
	if err != nil {
		t.Fatal(err)
	}
	id, err := prodSvc.Create(services.ProductInput{Name: "Linked", SupplierID: supID})
	if err != nil {
		t.Fatal(err)
	}

	// Clearing the supplier must store NULL, not '', or the FK constraint
	// rejects the row.
	empty := ""
	if err := prodSvc.Update(id, services.ProductChanges{SupplierID: &empty}); err != nil {
		t.Fatalf("clearing supplier must succeed: %v", err)
	}
	p, err := prodSvc.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if p.SupplierID != nil {
		t.Fatalf("want supplier cleared, got %q", *p.SupplierID)
	}

	// Re-linking still works.
	if err := prodSvc.Update(id, services.ProductChanges{SupplierID: &supID}); err != nil {
		t.Fatal(err)
	}
	p, _ = prodSvc.Get(id)
	if p.SupplierID == nil || *p.SupplierID != supID {
		t.Fatalf("want supplier %s, got %v", supID, p.SupplierID)
	}
}

func TestProduct_Update_BarcodeValidation(t *testing.T) {
	_, svc := memdb(t)
	id, err := svc.Create(services.ProductInput{Name: "Scanned", Barcode: "ABC-123"})
	if err != nil {
		t.Fatal(err)
	}

	// Update applies the same barcode rules as create.
	bad := "has spaces!"
	var ve *domain.ValidationError
	if err := svc.Update(id, services.ProductChanges{Barcode: &bad}); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}

	good := "XYZ-999"
	if err := svc.Update(id, services.ProductChanges{Barcode: &good}); err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if p.Barcode == nil || *p.Barcode != "XYZ-999" {
		t.Fatalf("want barcode XYZ-999, got %v", p.Barcode)
	}

	// Empty clears it to NULL.
	empty := ""
	if err := svc.Update(id, services.ProductChanges{Barcode: &empty}); err != nil {
		t.Fatal(err)
	}
	p, _ = svc.Get(id)
	if p.Barcode != nil {
		t.Fatalf("want barcode cleared, got %q", *p.Barcode)
	}
}

func TestProduct_CheckDuplicate(t *testing.T) {
	_, svc := memdb(t)
	id, err := svc.Create(services.ProductInput{Name: "Aspirin 500mg", Barcode: "ASP-500-X"})
	if err != nil {
		t.Fatal(err)
	}

	// Case-insensitive name match.
	conflict, err := svc.CheckDuplicate(services.DuplicateCheck{Name: "ASPIRIN 500MG"})
	if err != nil {
		t.Fatal(err)
	}
	if conflict == nil || conflict.ID != id {
		t.Fatalf("want name conflict with %s, got %+v", id, conflict)
	}

	// Exact barcode match.
	conflict, err = svc.CheckDuplicate(services.DuplicateCheck{Barcode: "ASP-500-X"})
	if err != nil {
		t.Fatal(err)
	}
	if conflict == nil {
		t.Fatal("want barcode conflict")
	}

	// Differently-cased barcode is not a conflict.
	conflict, err = svc.CheckDuplicate(services.DuplicateCheck{Barcode: "asp-500-x"})
	if err != nil {
		t.Fatal(err)
	}
	if conflict != nil {
		t.Fatalf("barcode comparison must be exact, got %+v", conflict)
	}

	// The product itself is excluded when editing.
	conflict, err = svc.CheckDuplicate(services.DuplicateCheck{ID: id, Name: "Aspirin 500mg"})
	if err != nil {
		t.Fatal(err)
	}
	if conflict != nil {
		t.Fatalf("self must not conflict, got %+v", conflict)
	}
}

func TestProduct_CheckDuplicate_NamePriority(t *testing.T) {
	_, svc := memdb(t)
	nameID, err := svc.Create(services.ProductInput{Name: "Ibuprofen"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(services.ProductInput{Name: "Other", Barcode: "IBU-1"}); err != nil {
		t.Fatal(err)
	}

	conflict, err := svc.CheckDuplicate(services.DuplicateCheck{Name: "ibuprofen", Barcode: "IBU-1"})
	if err != nil {
		t.Fatal(err)
	}
	if conflict == nil || conflict.ID != nameID {
		t.Fatalf("name match must win over barcode match, got %+v", conflict)
	}
}
