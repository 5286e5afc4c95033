package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	applog "posd/internal/log"
	"posd/internal/services"
)

type ExportHandler struct {
	Reports   *services.ReportService
	Exports   *services.ExportService
	Backups   *services.BackupService
	BackupDir string
}

// ExportSales renders the date-ranged sales report to an xlsx artifact and
// returns its path.
func (h *ExportHandler) ExportSales(c *fiber.Ctx) error {
	var body struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed export payload")
	}
	sales, err := h.Reports.SalesByDateRange(body.Start, body.End)
	if err != nil {
		return failErr(c, "export.sales", err)
	}
	path, err := h.Exports.WriteSalesReport(sales)
	if err != nil {
		return failErr(c, "export.sales", err)
	}
	applog.Audit(c, "export.sales", map[string]any{"path": path, "rows": len(sales)})
	return ok(c, fiber.Map{"path": path})
}

func (h *ExportHandler) CreateBackup(c *fiber.Ctx) error {
	path, err := h.Backups.Create(filepath.Join(h.BackupDir, "backups"))
	if err != nil {
		return failErr(c, "backup.create", err)
	}
	applog.Audit(c, "backup.create", map[string]any{"path": path})
	return ok(c, fiber.Map{"path": path})
}

func (h *ExportHandler) RestoreBackup(c *fiber.Ctx) error {
	var body struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&body); err != nil || body.Path == "" {
		return fail(c, fiber.StatusBadRequest, "backup path required")
	}
	if err := h.Backups.Restore(body.Path); err != nil {
		return failErr(c, "backup.restore", err)
	}
	applog.Audit(c, "backup.restore", map[string]any{"path": body.Path})
	return ok(c, fiber.Map{"restored": true})
}
