package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "posd/internal/log"
	"posd/internal/services"
	"posd/internal/validate"
)

type SupplierHandler struct {
	Suppliers *services.SupplierService
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.Suppliers.List()
	if err != nil {
		return failErr(c, "supplier.list", err)
	}
	return ok(c, out)
}

func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid supplier id")
	}
	s, err := h.Suppliers.Get(id)
	if err != nil {
		return failErr(c, "supplier.get", err)
	}
	return ok(c, s)
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in services.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed supplier payload")
	}
	id, err := h.Suppliers.Create(in)
	if err != nil {
		return failErr(c, "supplier.create", err)
	}
	applog.Audit(c, "supplier.create", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(okID(id))
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid supplier id")
	}
	var in services.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed supplier payload")
	}
	if err := h.Suppliers.Update(id, in); err != nil {
		return failErr(c, "supplier.update", err)
	}
	applog.Audit(c, "supplier.update", map[string]any{"id": id})
	return ok(c, okID(id).Data)
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid supplier id")
	}
	if err := h.Suppliers.Delete(id); err != nil {
		return failErr(c, "supplier.delete", err)
	}
	applog.Audit(c, "supplier.delete", map[string]any{"id": id})
	return ok(c, okID(id).Data)
}
