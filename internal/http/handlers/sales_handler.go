package handlers

import (
	"github.com/gofiber/fiber/v2"

	"posd/internal/domain"
	applog "posd/internal/log"
	"posd/internal/repos"
	"posd/internal/services"
	"posd/internal/validate"
)

type SalesHandler struct {
	Sales *services.SalesService
}

func (h *SalesHandler) Record(c *fiber.Ctx) error {
	var in services.SaleInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed sale payload")
	}
	sale, err := h.Sales.Record(in)
	if err != nil {
		return failErr(c, "sale.record", err)
	}
	applog.Audit(c, "sale.record", map[string]any{
		"id": sale.ID, "items": len(sale.Items), "total": sale.TotalAmount,
	})
	return c.Status(fiber.StatusCreated).JSON(domain.OK(sale))
}

func (h *SalesHandler) Get(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid sale id")
	}
	sale, err := h.Sales.Get(id)
	if err != nil {
		return failErr(c, "sale.get", err)
	}
	return ok(c, sale)
}

func (h *SalesHandler) History(c *fiber.Ctx) error {
	f := repos.HistoryFilters{
		PaymentMethod: c.Query("payment_method"),
		Limit:         c.QueryInt("limit"),
	}
	if start := c.Query("start"); start != "" {
		d, valid := validate.Date(start)
		if !valid {
			return fail(c, fiber.StatusBadRequest, "start must be YYYY-MM-DD")
		}
		f.Start = d
	}
	if end := c.Query("end"); end != "" {
		d, valid := validate.Date(end)
		if !valid {
			return fail(c, fiber.StatusBadRequest, "end must be YYYY-MM-DD")
		}
		f.End = d
	}
	out, err := h.Sales.History(f)
	if err != nil {
		return failErr(c, "sale.history", err)
	}
	return ok(c, out)
}

func (h *SalesHandler) Void(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid sale id")
	}
	if err := h.Sales.Void(id); err != nil {
		return failErr(c, "sale.void", err)
	}
	applog.Audit(c, "sale.void", map[string]any{"id": id})
	return ok(c, okID(id).Data)
}
