package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"posd/internal/domain"
	applog "posd/internal/log"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(domain.OK(data))
}

func okID(id string) domain.Result {
	return domain.OK(fiber.Map{"id": id})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(domain.Fail(msg))
}

// failErr maps the error taxonomy onto HTTP status codes. Storage detail is
// logged but never leaks past the envelope.
func failErr(c *fiber.Ctx, action string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fail(c, fiber.StatusBadRequest, ve.Error())
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return fail(c, fiber.StatusNotFound, nf.Error())
	}
	applog.Error(c, action, err, nil)
	return fail(c, fiber.StatusInternalServerError, "operation failed")
}
