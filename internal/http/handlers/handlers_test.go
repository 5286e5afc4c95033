package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"posd/internal/config"
	"posd/internal/http/handlers"
	"posd/internal/repos"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{DataDir: t.TempDir(), ExportDir: t.TempDir()}
	deps := handlers.NewDeps(db, cfg)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", deps.ProductHandler.Create)
	api.Delete("/products/:id", deps.ProductHandler.Delete)
	api.Post("/products/check-duplicate", deps.ProductHandler.CheckDuplicate)
	api.Post("/sales", deps.SalesHandler.Record)
	api.Get("/settings/:key", deps.SettingsHandler.Get)
	api.Put("/settings/:key", deps.SettingsHandler.Set)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, env
}

func TestProductEndpoints_Envelope(t *testing.T) {
	app := testApp(t)

	status, env := do(t, app, "POST", "/api/v1/products",
		`{"name":"Cough Syrup","quantity_in_stock":5,"selling_price":9.99}`)
	if status != fiber.StatusCreated || !env.Success {
		t.Fatalf("create: status=%d env=%+v", status, env)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == "" {
		t.Fatalf("create must return an id: %s", env.Data)
	}

	status, env = do(t, app, "GET", "/api/v1/products/"+created.ID, "")
	if status != fiber.StatusOK || !env.Success {
		t.Fatalf("get: status=%d env=%+v", status, env)
	}

	// Validation failures use the same envelope with success=false.
	status, env = do(t, app, "POST", "/api/v1/products", `{"name":""}`)
	if status != fiber.StatusBadRequest || env.Success || env.Error == "" {
		t.Fatalf("validation: status=%d env=%+v", status, env)
	}

	// Missing entity maps to 404.
	status, env = do(t, app, "GET", "/api/v1/products/missing-id", "")
	if status != fiber.StatusNotFound || env.Success {
		t.Fatalf("not found: status=%d env=%+v", status, env)
	}

	// Soft delete hides the product from the surface.
	status, _ = do(t, app, "DELETE", "/api/v1/products/"+created.ID, "")
	if status != fiber.StatusOK {
		t.Fatalf("delete: status=%d", status)
	}
	status, _ = do(t, app, "GET", "/api/v1/products/"+created.ID, "")
	if status != fiber.StatusNotFound {
		t.Fatalf("deleted product still visible: status=%d", status)
	}
}

func TestRecordSaleEndpoint(t *testing.T) {
	app := testApp(t)

	_, env := do(t, app, "POST", "/api/v1/products",
		`{"id":"prod-1","name":"Widget","quantity_in_stock":10}`)
	if !env.Success {
		t.Fatalf("seed product failed: %+v", env)
	}

	status, env := do(t, app, "POST", "/api/v1/sales",
		`{"items":[{"product_id":"prod-1","quantity":2,"unit_price":4.00}],"payment_method":"cash"}`)
	if status != fiber.StatusCreated || !env.Success {
		t.Fatalf("record: status=%d env=%+v", status, env)
	}
	var sale struct {
		TotalAmount float64 `json:"total_amount"`
	}
	if err := json.Unmarshal(env.Data, &sale); err != nil {
		t.Fatal(err)
	}
	if sale.TotalAmount != 8.00 {
		t.Fatalf("want total 8.00, got %v", sale.TotalAmount)
	}

	// Unknown product rolls back and reports 404.
	status, env = do(t, app, "POST", "/api/v1/sales",
		`{"items":[{"product_id":"ghost","quantity":1,"unit_price":1.00}]}`)
	if status != fiber.StatusNotFound || env.Success {
		t.Fatalf("rollback: status=%d env=%+v", status, env)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	app := testApp(t)

	status, env := do(t, app, "GET", "/api/v1/settings/store.name", "")
	if status != fiber.StatusOK || !env.Success {
		t.Fatalf("absent key: status=%d env=%+v", status, env)
	}
	var v struct {
		Found bool   `json:"found"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatal(err)
	}
	if v.Found {
		t.Fatalf("want found=false, got %+v", v)
	}

	status, _ = do(t, app, "PUT", "/api/v1/settings/store.name", `{"value":"Corner Shop"}`)
	if status != fiber.StatusOK {
		t.Fatalf("set: status=%d", status)
	}
	_, env = do(t, app, "GET", "/api/v1/settings/store.name", "")
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatal(err)
	}
	if !v.Found || v.Value != "Corner Shop" {
		t.Fatalf("round trip failed: %+v", v)
	}
}
