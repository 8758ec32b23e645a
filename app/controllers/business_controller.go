package controllers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/database"
	metrics "github.com/antojadoapp/antojado/internal/pkg/metrics/counter"
	"github.com/antojadoapp/antojado/internal/pkg/reviews"
	"github.com/antojadoapp/antojado/internal/pkg/shortener"
	"github.com/antojadoapp/antojado/internal/pkg/storage"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
	"github.com/antojadoapp/antojado/internal/pkg/utils"
)

// GalleryImage is the view model for one image in the profile gallery.
type GalleryImage struct {
	UUID         string
	Title        string
	PreviewPath  string
	OriginalPath string
}

// ReviewEntry is the view model for one review on the profile page.
type ReviewEntry struct {
	ID        uint
	UserName  string
	AvatarURL string
	Rating    int
	Comment   string
	CreatedAt string
	IsOwn     bool
}

// HandleBusinessProfile renders the public profile of a business.
func HandleBusinessProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Negocio no encontrado"}
		return flash.WithError(c, fm).Redirect("/")
	}

	repos := repository.GetGlobalRepositories()
	business, err := repos.Business.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Negocio no encontrado"}
		return flash.WithError(c, fm).Redirect("/")
	}

	if err := metrics.AddBusinessView(business.ID); err != nil {
		log.Errorf("view counter for business %d failed: %v", business.ID, err)
	}

	userCtx := usercontext.GetUserContext(c)

	menu, err := repos.Business.GetMenu(business.ID)
	if err != nil {
		menu = nil
	}

	gallery := buildGallery(business.ID, repos)

	svc := reviews.NewServiceFromDB(database.GetDB())
	allReviews, err := svc.ForBusiness(context.Background(), business.ID)
	if err != nil {
		allReviews = nil
	}

	entries := make([]ReviewEntry, 0, len(allReviews))
	var ownReview *models.Review
	for i := range allReviews {
		r := allReviews[i]
		isOwn := userCtx.IsLoggedIn && r.UserID == userCtx.UserID
		if isOwn {
			ownReview = &allReviews[i]
		}
		entries = append(entries, ReviewEntry{
			ID:        r.ID,
			UserName:  r.UserName,
			AvatarURL: utils.GetGravatarURL(r.User.Email, 80),
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format("02/01/2006"),
			IsOwn:     isOwn,
		})
	}

	isFavorite := false
	if userCtx.IsLoggedIn {
		isFavorite = repos.Favorite.IsFavorite(userCtx.UserID, business.ID)
	}

	return render(c, "pages/business", fiber.Map{
		"Title":      business.Name + " | Antojado",
		"Business":   business,
		"IsVerified": business.IsVerified(),
		"Menu":       menu,
		"Gallery":    gallery,
		"Reviews":    entries,
		"OwnReview":  ownReview,
		"IsFavorite": isFavorite,
		"ShareURL":   "/b/" + business.ShareCode,
	})
}

// HandleShareRedirect resolves a short share link and counts the hit.
func HandleShareRedirect(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Redirect("/")
	}

	repos := repository.GetGlobalRepositories()

	// Codes are base62-encoded row IDs, so try the primary key first and
	// only fall back to the share_code column for codes that predate the
	// encoder.
	var business *models.Business
	if id := shortener.DecodeID(code); id > 0 {
		if b, err := repos.Business.GetByID(id); err == nil && b.ShareCode == code {
			business = b
		}
	}
	if business == nil {
		b, err := repos.Business.GetByShareCode(code)
		if err != nil {
			fm := fiber.Map{"type": "error", "message": "Ese enlace ya no existe"}
			return flash.WithError(c, fm).Redirect("/")
		}
		business = b
	}

	if err := metrics.AddBusinessShare(business.ID); err != nil {
		log.Errorf("share counter for business %d failed: %v", business.ID, err)
	}

	return c.Redirect("/negocio/"+strconv.FormatUint(uint64(business.ID), 10), fiber.StatusSeeOther)
}

func buildGallery(businessID uint, repos *repository.Repositories) []GalleryImage {
	images, err := repos.Business.GetImages(businessID)
	if err != nil {
		return nil
	}

	manager := storage.NewManager()
	gallery := make([]GalleryImage, 0, len(images))
	for _, img := range images {
		preview := manager.OriginalURL(businessID, img.FileName)
		if img.HasThumbnail {
			preview = manager.ThumbnailURL(businessID, img.FileName)
		}
		gallery = append(gallery, GalleryImage{
			UUID:         img.UUID,
			Title:        img.Title,
			PreviewPath:  preview,
			OriginalPath: manager.OriginalURL(businessID, img.FileName),
		})
	}

	return gallery
}
