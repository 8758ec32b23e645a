package router

import (
	"github.com/antojadoapp/antojado/app/controllers"
	"github.com/antojadoapp/antojado/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Short share URLs for business profiles
	app.Get("/b/:code", loggedInMiddleware, controllers.HandleShareRedirect)

	// Account activation from the mail link
	app.Get("/activar", loggedInMiddleware, controllers.HandleAuthActivate)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
