package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"posd/internal/config"
	"posd/internal/http/handlers"
	applog "posd/internal/log"
	"posd/internal/repos"
)

func main() {
	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": "internal error",
			})
		},
	})
	// Guard against runaway payloads (image lists are paths, not blobs)
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "error": "rate limit exceeded, retry soon",
			})
		},
	}))

	// ---------- Channel surface ----------
	deps := handlers.NewDeps(db, cfg)
	api := app.Group("/api/v1")

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", deps.ProductHandler.Create)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)
	api.Post("/products/check-duplicate", deps.ProductHandler.CheckDuplicate)

	api.Get("/suppliers", deps.SupplierHandler.List)
	api.Get("/suppliers/:id", deps.SupplierHandler.Get)
	api.Post("/suppliers", deps.SupplierHandler.Create)
	api.Put("/suppliers/:id", deps.SupplierHandler.Update)
	api.Delete("/suppliers/:id", deps.SupplierHandler.Delete)

	api.Post("/sales", deps.SalesHandler.Record)
	api.Get("/sales", deps.SalesHandler.History)
	api.Get("/sales/range", deps.ReportHandler.SalesByDateRange)
	api.Get("/sales/:id", deps.SalesHandler.Get)
	api.Delete("/sales/:id", deps.SalesHandler.Void)

	api.Get("/reports/low-stock", deps.ReportHandler.LowStock)
	api.Get("/reports/expiring", deps.ReportHandler.Expiring)
	api.Get("/reports/inventory-value", deps.ReportHandler.InventoryValue)
	api.Get("/reports/summary", deps.ReportHandler.Summary)

	api.Get("/settings/:key", deps.SettingsHandler.Get)
	api.Put("/settings/:key", deps.SettingsHandler.Set)

	api.Post("/exports/sales", deps.ExportHandler.ExportSales)
	api.Post("/backups", deps.ExportHandler.CreateBackup)
	api.Post("/backups/restore", deps.ExportHandler.RestoreBackup)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Loopback only: the renderer UI is the sole client.
	log.Fatal(app.Listen("127.0.0.1:" + cfg.Port))
}
