package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/antojadoapp/antojado/internal/pkg/env"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

// render merges the layout data every page needs with the page's own data.
func render(c *fiber.Ctx, template string, data fiber.Map) error {
	userCtx := usercontext.GetUserContext(c)

	csrfToken, _ := c.Locals("csrf").(string)

	merged := fiber.Map{
		"Csrf":       csrfToken,
		"IsLoggedIn": userCtx.IsLoggedIn,
		"IsBusiness": userCtx.IsBusiness,
		"Username":   userCtx.Username,
		"Flash":      flash.Get(c),
		"IsDev":      env.IsDev(),
	}
	for k, v := range data {
		merged[k] = v
	}

	return c.Render(template, merged, "layouts/main")
}
