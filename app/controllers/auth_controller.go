package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/database"
	"github.com/antojadoapp/antojado/internal/pkg/env"
	"github.com/antojadoapp/antojado/internal/pkg/hcaptcha"
	"github.com/antojadoapp/antojado/internal/pkg/mail"
	"github.com/antojadoapp/antojado/internal/pkg/session"
	"github.com/antojadoapp/antojado/internal/pkg/statistics"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		repos := repository.GetGlobalRepositories()
		user, err := repos.User.GetByEmail(strings.TrimSpace(c.FormValue("email")))
		if err != nil {
			fm["message"] = "Correo o contrasena incorrectos"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
			fm["message"] = "Correo o contrasena incorrectos"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.IsActive() {
			fm["message"] = "Tu cuenta aun no esta activada. Revisa tu correo."

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			fm["message"] = fmt.Sprintf("Algo salio mal: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess.Set(usercontext.AuthKey, true)
		sess.Set(usercontext.KeyUserID, user.ID)
		sess.Set(usercontext.KeyUsername, user.Name)
		sess.Set(usercontext.KeyEmail, user.Email)
		sess.Set(usercontext.KeyUserType, user.UserType)
		sess.Set(usercontext.KeyUserRole, user.Role)

		if err := sess.Save(); err != nil {
			fm["message"] = fmt.Sprintf("Algo salio mal: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		database.GetDB().Model(user).Update("last_login_at", time.Now())

		fm = fiber.Map{
			"type":    "success",
			"message": "Bienvenido de vuelta!",
		}

		return flash.WithSuccess(c, fm).Redirect("/")
	}

	return render(c, "pages/login", fiber.Map{
		"Title": "Iniciar sesion | Antojado",
	})
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "Sesion cerrada"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("Algo salio mal: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Hasta pronto!",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		// Verify hCaptcha token
		hcaptchaToken := c.FormValue("h-captcha-response")
		valid, err := hcaptcha.Verify(hcaptchaToken)
		if err != nil || !valid {
			errorMsg := "La verificacion del captcha fallo. Intentalo de nuevo."
			if err != nil && env.IsDev() {
				errorMsg = fmt.Sprintf("La verificacion del captcha fallo: %v", err)
			}

			fm := fiber.Map{
				"type":    "error",
				"message": errorMsg,
			}
			return flash.WithError(c, fm).Redirect("/registro")
		}

		userType := c.FormValue("user_type", models.USER_TYPE_PERSON)
		if userType != models.USER_TYPE_PERSON && userType != models.USER_TYPE_BUSINESS {
			userType = models.USER_TYPE_PERSON
		}

		user, err := models.CreateUser(
			c.FormValue("username"),
			strings.TrimSpace(c.FormValue("email")),
			c.FormValue("password"),
			userType,
		)
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("Algo salio mal: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/registro")
		}

		user.Status = models.STATUS_INACTIVE
		if err := user.GenerateActivationToken(); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("Algo salio mal: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/registro")
		}

		repos := repository.GetGlobalRepositories()
		if err := repos.User.Create(user); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "Ese correo ya esta registrado",
			}

			return flash.WithError(c, fm).Redirect("/registro")
		}

		// Business accounts get their public profile immediately so the
		// dashboard has something to edit after activation
		if user.IsBusiness() {
			businessName := strings.TrimSpace(c.FormValue("business_name"))
			if businessName == "" {
				businessName = user.Name
			}
			business := &models.Business{
				UserID: user.ID,
				Name:   businessName,
			}
			if err := repos.Business.Create(business); err != nil {
				fm := fiber.Map{
					"type":    "error",
					"message": fmt.Sprintf("No se pudo crear el perfil del negocio: %s", err),
				}

				return flash.WithError(c, fm).Redirect("/registro")
			}
		}

		go sendActivationMail(user)
		go statistics.UpdateStatisticsCache()

		fm := fiber.Map{
			"type":    "success",
			"message": "Listo! Te enviamos un correo para activar tu cuenta.",
		}

		return flash.WithSuccess(c, fm).Redirect("/login")
	}

	return render(c, "pages/register", fiber.Map{
		"Title":           "Registro | Antojado",
		"HCaptchaSiteKey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	})
}

// HandleAuthActivate activates an account via the token from the mail link.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		fm := fiber.Map{"type": "error", "message": "Enlace de activacion invalido"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByActivationToken(token)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Enlace de activacion invalido o expirado"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := repos.User.Update(user); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Algo salio mal: %s", err)}
		return flash.WithError(c, fm).Redirect("/login")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Cuenta activada! Ya puedes iniciar sesion.",
	}
	return flash.WithSuccess(c, fm).Redirect("/login")
}

func sendActivationMail(user *models.User) {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	link := fmt.Sprintf("%s/activar?token=%s", base, user.ActivationToken)
	body := fmt.Sprintf(
		"Hola %s,\r\n\r\nGracias por registrarte en Antojado. Activa tu cuenta con este enlace:\r\n\r\n%s\r\n\r\nSi no creaste esta cuenta, ignora este correo.\r\n",
		user.Name, link,
	)

	if err := mail.SendMail(user.Email, "Activa tu cuenta de Antojado", body); err != nil {
		log.Errorf("activation mail to %s failed: %v", user.Email, err)
	}
}
