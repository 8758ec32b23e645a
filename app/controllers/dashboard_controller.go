package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/entitlements"
	"github.com/antojadoapp/antojado/internal/pkg/jobqueue"
	"github.com/antojadoapp/antojado/internal/pkg/s3media"
	"github.com/antojadoapp/antojado/internal/pkg/storage"
	"github.com/antojadoapp/antojado/internal/pkg/upload"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

// ownBusiness loads the business profile of the logged-in owner.
func ownBusiness(c *fiber.Ctx) (*models.Business, error) {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()
	return repos.Business.GetByUserID(userCtx.UserID)
}

// HandleDashboard renders the owner's overview with usage against the plan.
func HandleDashboard(c *fiber.Ctx) error {
	business, err := ownBusiness(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No encontramos tu negocio"}
		return flash.WithError(c, fm).Redirect("/")
	}

	repos := repository.GetGlobalRepositories()
	menuCount, _ := repos.Business.CountMenuItems(business.ID)
	imageCount, _ := repos.Business.CountImages(business.ID)
	favoriteCount, _ := repos.Favorite.CountByBusiness(business.ID)

	plan := entitlements.Normalize(business.CurrentPlan())
	limits, err := entitlements.LimitsFor(plan)
	if err != nil {
		log.Errorf("business %d has unknown plan %q", business.ID, business.SubscriptionPlan)
		limits, _ = entitlements.LimitsFor(entitlements.PlanFree)
	}

	return render(c, "pages/dashboard", fiber.Map{
		"Title":         "Mi negocio | Antojado",
		"Business":      business,
		"Plan":          string(plan),
		"MenuCount":     menuCount,
		"MenuLimit":     limits.MaxMenuItems,
		"ImageCount":    imageCount,
		"ImageLimit":    limits.MaxImages,
		"FavoriteCount": favoriteCount,
		"Gallery":       buildGallery(business.ID, repos),
		"Menu":          mustMenu(repos, business.ID),
		"Unlimited":     entitlements.Unlimited,
	})
}

func mustMenu(repos *repository.Repositories, businessID uint) []models.MenuItem {
	menu, err := repos.Business.GetMenu(businessID)
	if err != nil {
		return nil
	}
	return menu
}

// HandleProfileUpdate saves the editable profile fields.
func HandleProfileUpdate(c *fiber.Ctx) error {
	business, err := ownBusiness(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No encontramos tu negocio"}
		return flash.WithError(c, fm).Redirect("/")
	}

	business.Name = strings.TrimSpace(c.FormValue("name", business.Name))
	business.Category = strings.TrimSpace(c.FormValue("category", business.Category))
	business.Address = strings.TrimSpace(c.FormValue("address", business.Address))
	business.Phone = strings.TrimSpace(c.FormValue("phone", business.Phone))
	business.Description = strings.TrimSpace(c.FormValue("description", business.Description))
	business.OpeningHours = strings.TrimSpace(c.FormValue("opening_hours", business.OpeningHours))

	if err := business.Validate(); err != nil {
		fm := fiber.Map{"type": "error", "message": "Revisa los datos del perfil"}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Business.Update(business); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Algo salio mal: %s", err)}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	fm := fiber.Map{"type": "success", "message": "Perfil actualizado"}
	return flash.WithSuccess(c, fm).Redirect("/panel")
}

// HandleMenuItemAdd adds a dish if the plan still has room.
func HandleMenuItemAdd(c *fiber.Ctx) error {
	business, err := ownBusiness(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No encontramos tu negocio"}
		return flash.WithError(c, fm).Redirect("/")
	}

	repos := repository.GetGlobalRepositories()
	current, _ := repos.Business.CountMenuItems(business.ID)

	plan := entitlements.Normalize(business.CurrentPlan())
	ok, err := entitlements.CanAddMenuItem(plan, int(current))
	if err != nil {
		log.Errorf("business %d has unknown plan %q", business.ID, business.SubscriptionPlan)
		fm := fiber.Map{"type": "error", "message": "Tu plan no es valido, contacta soporte"}
		return flash.WithError(c, fm).Redirect("/panel")
	}
	if !ok {
		fm := fiber.Map{"type": "error", "message": "Alcanzaste el limite de platillos de tu plan. Mejora tu plan para agregar mas."}
		return flash.WithError(c, fm).Redirect("/planes")
	}

	price, _ := strconv.ParseFloat(c.FormValue("price", "0"), 64)
	item := &models.MenuItem{
		BusinessID:  business.ID,
		Name:        strings.TrimSpace(c.FormValue("name")),
		Price:       price,
		Description: strings.TrimSpace(c.FormValue("description")),
		Position:    int(current),
	}
	if err := item.Validate(); err != nil {
		fm := fiber.Map{"type": "error", "message": "Revisa los datos del platillo"}
		return flash.WithError(c, fm).Redirect("/panel")
	}
	if err := repos.Business.CreateMenuItem(item); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Algo salio mal: %s", err)}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	fm := fiber.Map{"type": "success", "message": "Platillo agregado"}
	return flash.WithSuccess(c, fm).Redirect("/panel")
}

// HandleMenuItemDelete removes a dish from the owner's menu.
func HandleMenuItemDelete(c *fiber.Ctx) error {
	business, err := ownBusiness(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No encontramos tu negocio"}
		return flash.WithError(c, fm).Redirect("/")
	}

	itemID, err := strconv.ParseUint(c.Params("itemID"), 10, 32)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Platillo no encontrado"}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Business.DeleteMenuItem(business.ID, uint(itemID)); err != nil {
		fm := fiber.Map{"type": "error", "message": "Platillo no encontrado"}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	fm := fiber.Map{"type": "success", "message": "Platillo eliminado"}
	return flash.WithSuccess(c, fm).Redirect("/panel")
}

// HandleGalleryUpload stores as many of the uploaded images as the plan
// admits. When only part of a batch fits, the rest is rejected with a
// message naming the number that was stored.
func HandleGalleryUpload(c *fiber.Ctx) error {
	business, err := ownBusiness(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No encontramos tu negocio"}
		return flash.WithError(c, fm).Redirect("/")
	}

	form, err := c.MultipartForm()
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No se recibieron imagenes"}
		return flash.WithError(c, fm).Redirect("/panel")
	}
	files := form.File["images"]
	if len(files) == 0 {
		fm := fiber.Map{"type": "error", "message": "No se recibieron imagenes"}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	repos := repository.GetGlobalRepositories()
	current, _ := repos.Business.CountImages(business.ID)

	plan := entitlements.Normalize(business.CurrentPlan())
	admitted, err := entitlements.AdmitImages(plan, int(current), len(files))
	if err != nil {
		log.Errorf("business %d has unknown plan %q", business.ID, business.SubscriptionPlan)
		fm := fiber.Map{"type": "error", "message": "Tu plan no es valido, contacta soporte"}
		return flash.WithError(c, fm).Redirect("/panel")
	}
	if admitted == 0 {
		fm := fiber.Map{"type": "error", "message": "Alcanzaste el limite de imagenes de tu plan. Mejora tu plan para subir mas."}
		return flash.WithError(c, fm).Redirect("/planes")
	}

	s3cfg, _ := s3media.LoadConfig()
	replicate := s3cfg != nil && s3cfg.IsEnabled()

	manager := storage.NewManager()
	stored := 0
	for _, file := range files[:admitted] {
		if err := storeGalleryImage(manager, repos, business.ID, file, replicate); err != nil {
			log.Errorf("upload for business %d failed: %v", business.ID, err)
			continue
		}
		stored++
	}

	if stored == 0 {
		fm := fiber.Map{"type": "error", "message": "Ninguna imagen pudo guardarse. Usa jpg, png, gif o webp."}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	if admitted < len(files) {
		fm := fiber.Map{
			"type":    "warning",
			"message": fmt.Sprintf("Solo pudimos guardar %d imagen(es) por el limite de tu plan", stored),
		}
		return flash.WithInfo(c, fm).Redirect("/panel")
	}

	fm := fiber.Map{"type": "success", "message": fmt.Sprintf("%d imagen(es) subidas", stored)}
	return flash.WithSuccess(c, fm).Redirect("/panel")
}

// storeGalleryImage validates the upload by sniffing its content, writes it
// to disk and queues the thumbnail job.
func storeGalleryImage(manager *storage.Manager, repos *repository.Repositories, businessID uint, file *multipart.FileHeader, replicate bool) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	src.Close()

	ext, err := upload.ValidateImageBySniff(file.Filename, head[:n])
	if err != nil {
		return err
	}

	img := &models.BusinessImage{
		BusinessID: businessID,
		Title:      file.Filename,
		FileType:   ext,
		FileSize:   file.Size,
	}
	if err := repos.Business.CreateImage(img); err != nil {
		return fmt.Errorf("failed to create image record: %w", err)
	}

	img.FileName = storage.SafeFileName(img.UUID, file.Filename)
	if _, err := manager.SaveUpload(file, businessID, img.FileName); err != nil {
		return err
	}
	if err := repos.Business.UpdateImage(img); err != nil {
		return fmt.Errorf("failed to update image record: %w", err)
	}

	payload := jobqueue.ThumbnailJobPayload{
		ImageID:    img.ID,
		ImageUUID:  img.UUID,
		BusinessID: businessID,
		FileName:   img.FileName,
		Replicate:  replicate,
	}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeThumbnail, payload.ToMap()); err != nil {
		// Image is saved, the thumbnail can be regenerated later
		log.Errorf("enqueue thumbnail for image %s failed: %v", img.UUID, err)
	}

	return nil
}

// HandleGalleryImageDelete removes an image everywhere: record, disk and S3.
func HandleGalleryImageDelete(c *fiber.Ctx) error {
	business, err := ownBusiness(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No encontramos tu negocio"}
		return flash.WithError(c, fm).Redirect("/")
	}

	img, err := repository.GetGlobalRepositories().Business.GetImageByUUID(c.Params("uuid"))
	if err != nil || img.BusinessID != business.ID {
		fm := fiber.Map{"type": "error", "message": "Imagen no encontrada"}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Business.DeleteImage(business.ID, img.ID); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Algo salio mal: %s", err)}
		return flash.WithError(c, fm).Redirect("/panel")
	}

	manager := storage.NewManager()
	if err := manager.Remove(business.ID, img.FileName); err != nil {
		log.Errorf("removing files for image %s failed: %v", img.UUID, err)
	}

	if img.InS3 {
		cfg, _ := s3media.LoadConfig()
		if cfg != nil && cfg.IsEnabled() {
			payload := jobqueue.S3DeleteJobPayload{
				ImageUUID: img.UUID,
				ObjectKey: cfg.ObjectKey(business.ID, img.UUID, img.FileName),
			}
			if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeS3Delete, payload.ToMap()); err != nil {
				log.Errorf("enqueue S3 delete for image %s failed: %v", img.UUID, err)
			}
		}
	}

	fm := fiber.Map{"type": "success", "message": "Imagen eliminada"}
	return flash.WithSuccess(c, fm).Redirect("/panel")
}
