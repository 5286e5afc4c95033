package handlers

import (
	"github.com/gofiber/fiber/v2"

	"posd/internal/services"
	"posd/internal/validate"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func (h *ReportHandler) SalesByDateRange(c *fiber.Ctx) error {
	out, err := h.Reports.SalesByDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		return failErr(c, "report.sales_by_range", err)
	}
	return ok(c, out)
}

func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold := validate.Threshold(c.Query("threshold"), 10)
	out, err := h.Reports.LowStockItems(threshold)
	if err != nil {
		return failErr(c, "report.low_stock", err)
	}
	return ok(c, out)
}

func (h *ReportHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.Reports.ExpiringProducts(c.Query("start"), c.Query("end"))
	if err != nil {
		return failErr(c, "report.expiring", err)
	}
	return ok(c, out)
}

func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	v, err := h.Reports.InventoryValue()
	if err != nil {
		return failErr(c, "report.inventory_value", err)
	}
	return ok(c, fiber.Map{"value": v})
}

func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.Reports.Summary(c.Query("start"), c.Query("end"))
	if err != nil {
		return failErr(c, "report.summary", err)
	}
	return ok(c, out)
}
