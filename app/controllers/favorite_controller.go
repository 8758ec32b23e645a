package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

// HandleFavoriteToggle adds or removes a business from the user's favorites.
func HandleFavoriteToggle(c *fiber.Ctx) error {
	businessID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Negocio no encontrado"}
		return flash.WithError(c, fm).Redirect("/")
	}
	profileURL := "/negocio/" + c.Params("id")

	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		fm := fiber.Map{"type": "error", "message": "Inicia sesion para guardar favoritos"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Favorite.Toggle(userCtx.UserID, uint(businessID)); err != nil {
		fm := fiber.Map{"type": "error", "message": "No pudimos guardar el favorito"}
		return flash.WithError(c, fm).Redirect(profileURL)
	}

	return c.Redirect(profileURL, fiber.StatusSeeOther)
}

// HandleFavoritesList shows the user's saved businesses.
func HandleFavoritesList(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	favorites, err := repos.Favorite.ListByUser(userCtx.UserID)
	if err != nil {
		favorites = nil
	}

	return render(c, "pages/favorites", fiber.Map{
		"Title":     "Mis favoritos | Antojado",
		"Favorites": favorites,
	})
}
