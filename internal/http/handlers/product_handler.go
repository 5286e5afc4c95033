package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "posd/internal/log"
	"posd/internal/services"
	"posd/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	var (
		out any
		err error
	)
	if q := c.Query("q"); q != "" {
		out, err = h.Products.Search(q)
	} else if cat := c.Query("category"); cat != "" {
		list, lerr := h.Products.List()
		if lerr != nil {
			return failErr(c, "product.list", lerr)
		}
		out = services.FilterByCategory(list, cat)
	} else {
		out, err = h.Products.List()
	}
	if err != nil {
		return failErr(c, "product.list", err)
	}
	return ok(c, out)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Products.Get(id)
	if err != nil {
		return failErr(c, "product.get", err)
	}
	return ok(c, p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed product payload")
	}
	id, err := h.Products.Create(in)
	if err != nil {
		return failErr(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(okID(id))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var ch services.ProductChanges
	if err := c.BodyParser(&ch); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed change set")
	}
	if err := h.Products.Update(id, ch); err != nil {
		return failErr(c, "product.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": id})
	return ok(c, okID(id).Data)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Products.Delete(id); err != nil {
		return failErr(c, "product.delete", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return ok(c, okID(id).Data)
}

func (h *ProductHandler) CheckDuplicate(c *fiber.Ctx) error {
	var in services.DuplicateCheck
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed payload")
	}
	conflict, err := h.Products.CheckDuplicate(in)
	if err != nil {
		return failErr(c, "product.check_duplicate", err)
	}
	if conflict == nil {
		return ok(c, fiber.Map{"conflict": false})
	}
	return ok(c, fiber.Map{"conflict": true, "product": conflict})
}
