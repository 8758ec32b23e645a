package router

import "github.com/gofiber/fiber/v2"

// Router is anything that can attach its routes to the app
type Router interface {
	InstallRouter(app *fiber.App)
}
