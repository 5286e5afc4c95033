package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "posd/internal/log"
	"posd/internal/services"
	"posd/internal/validate"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	key, valid := validate.SettingKey(c.Params("key"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid setting key")
	}
	v, err := h.Settings.Get(key)
	if err != nil {
		return failErr(c, "settings.get", err)
	}
	return ok(c, v)
}

func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	key, valid := validate.SettingKey(c.Params("key"))
	if !valid {
		return fail(c, fiber.StatusBadRequest, "invalid setting key")
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed setting payload")
	}
	if err := h.Settings.Set(key, body.Value); err != nil {
		return failErr(c, "settings.set", err)
	}
	applog.Audit(c, "settings.set", map[string]any{"key": key})
	return ok(c, fiber.Map{"key": key})
}
