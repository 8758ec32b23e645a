package router

import (
	"strings"
	"time"

	"github.com/antojadoapp/antojado/app/controllers"
	"github.com/antojadoapp/antojado/internal/pkg/env"
	"github.com/antojadoapp/antojado/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	// Directory
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Get("/buscar", loggedInMiddleware, controllers.HandleSearch)
	group.Get("/planes", loggedInMiddleware, controllers.HandlePricing)

	// Auth
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/registro", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/registro", loggedInMiddleware, controllers.HandleAuthRegister)

	// Public business profile + reviews
	group.Get("/negocio/:id", loggedInMiddleware, controllers.HandleBusinessProfile)
	group.Post("/negocio/:id/resenas", middleware.RequireAuth, controllers.HandleReviewSubmit)
	group.Post("/negocio/:id/resenas/editar", middleware.RequireAuth, controllers.HandleReviewEdit)
	group.Post("/negocio/:id/resenas/eliminar", middleware.RequireAuth, controllers.HandleReviewDelete)
	group.Post("/negocio/:id/favorito", middleware.RequireAuth, controllers.HandleFavoriteToggle)

	// Favorites
	group.Get("/favoritos", middleware.RequireAuth, controllers.HandleFavoritesList)

	// Owner dashboard
	group.Get("/panel", middleware.RequireBusiness, controllers.HandleDashboard)
	group.Post("/panel/perfil", middleware.RequireBusiness, controllers.HandleProfileUpdate)
	group.Post("/panel/menu", middleware.RequireBusiness, controllers.HandleMenuItemAdd)
	group.Post("/panel/menu/:itemID/eliminar", middleware.RequireBusiness, controllers.HandleMenuItemDelete)
	group.Post("/panel/galeria", middleware.RequireBusiness, controllers.HandleGalleryUpload)
	group.Post("/panel/galeria/:uuid/eliminar", middleware.RequireBusiness, controllers.HandleGalleryImageDelete)

	// Simulated checkout
	group.Post("/planes/cambiar", middleware.RequireBusiness, controllers.HandleCheckout)
}
