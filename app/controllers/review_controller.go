package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/antojadoapp/antojado/internal/pkg/database"
	"github.com/antojadoapp/antojado/internal/pkg/reviews"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

// HandleReviewSubmit creates the logged-in user's review for a business.
func HandleReviewSubmit(c *fiber.Ctx) error {
	businessID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Negocio no encontrado"}
		return flash.WithError(c, fm).Redirect("/")
	}
	profileURL := "/negocio/" + c.Params("id")

	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		fm := fiber.Map{"type": "error", "message": "Inicia sesion para escribir una resena"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	rating, _ := strconv.Atoi(c.FormValue("rating"))

	svc := reviews.NewServiceFromDB(database.GetDB())
	_, err = svc.Submit(context.Background(), reviews.SubmitInput{
		BusinessID: uint(businessID),
		AuthorID:   userCtx.UserID,
		AuthorName: userCtx.Username,
		Rating:     rating,
		Comment:    c.FormValue("comment"),
	})
	if err != nil {
		fm := fiber.Map{"type": "error", "message": reviewErrorMessage(err)}
		return flash.WithError(c, fm).Redirect(profileURL)
	}

	fm := fiber.Map{"type": "success", "message": "Gracias por tu resena!"}
	return flash.WithSuccess(c, fm).Redirect(profileURL)
}

// HandleReviewEdit updates the logged-in user's review in place.
func HandleReviewEdit(c *fiber.Ctx) error {
	businessID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Negocio no encontrado"}
		return flash.WithError(c, fm).Redirect("/")
	}
	profileURL := "/negocio/" + c.Params("id")

	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		fm := fiber.Map{"type": "error", "message": "Inicia sesion para editar tu resena"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	svc := reviews.NewServiceFromDB(database.GetDB())

	// Edits are always applied to the author's own review
	own, err := svc.AuthorReview(context.Background(), uint(businessID), userCtx.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": reviewErrorMessage(err)}
		return flash.WithError(c, fm).Redirect(profileURL)
	}

	rating, _ := strconv.Atoi(c.FormValue("rating"))
	if _, err := svc.Edit(context.Background(), own.ID, uint(businessID), rating, c.FormValue("comment")); err != nil {
		fm := fiber.Map{"type": "error", "message": reviewErrorMessage(err)}
		return flash.WithError(c, fm).Redirect(profileURL)
	}

	fm := fiber.Map{"type": "success", "message": "Resena actualizada"}
	return flash.WithSuccess(c, fm).Redirect(profileURL)
}

// HandleReviewDelete removes the logged-in user's review.
func HandleReviewDelete(c *fiber.Ctx) error {
	businessID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Negocio no encontrado"}
		return flash.WithError(c, fm).Redirect("/")
	}
	profileURL := "/negocio/" + c.Params("id")

	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		fm := fiber.Map{"type": "error", "message": "Inicia sesion primero"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	svc := reviews.NewServiceFromDB(database.GetDB())

	own, err := svc.AuthorReview(context.Background(), uint(businessID), userCtx.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": reviewErrorMessage(err)}
		return flash.WithError(c, fm).Redirect(profileURL)
	}

	if err := svc.Delete(context.Background(), own.ID, uint(businessID)); err != nil {
		fm := fiber.Map{"type": "error", "message": reviewErrorMessage(err)}
		return flash.WithError(c, fm).Redirect(profileURL)
	}

	fm := fiber.Map{"type": "success", "message": "Resena eliminada"}
	return flash.WithSuccess(c, fm).Redirect(profileURL)
}

// reviewErrorMessage maps service errors to user-facing messages.
func reviewErrorMessage(err error) string {
	var valErr *reviews.ValidationError
	if errors.As(err, &valErr) {
		switch valErr.Field {
		case "rating":
			return "La calificacion debe ser entre 1 y 5 estrellas"
		case "comment":
			return "El comentario debe tener al menos 10 caracteres"
		}
		return "Revisa los datos de tu resena"
	}

	if errors.Is(err, reviews.ErrDuplicateReview) {
		return "Ya escribiste una resena para este negocio"
	}
	if errors.Is(err, reviews.ErrReviewNotFound) {
		return "No encontramos tu resena"
	}

	var storageErr *reviews.StorageError
	if errors.As(err, &storageErr) {
		log.Errorf("review storage error (%s): %v", storageErr.Op, storageErr.Err)
		return "No pudimos guardar tu resena, intentalo de nuevo"
	}

	log.Errorf("unexpected review error: %v", err)
	return "Algo salio mal, intentalo de nuevo"
}
