package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/database"
	"github.com/antojadoapp/antojado/internal/pkg/entitlements"
	"github.com/antojadoapp/antojado/internal/pkg/session"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

// Monthly prices in cents (MXN). No payment provider is wired; checkout is
// simulated and only recorded in the plan change audit table.
var planPrices = map[entitlements.Plan]int{
	entitlements.PlanFree:      0,
	entitlements.PlanPremium:   9900,
	entitlements.PlanDestacado: 19900,
}

// PlanOption is the view model for one pricing card.
type PlanOption struct {
	Plan       string
	PriceCents int
	Price      string
	MaxImages  int
	MaxMenu    int
	Featured   bool
	Verified   bool
	Current    bool
}

// HandlePricing renders the plan comparison page.
func HandlePricing(c *fiber.Ctx) error {
	currentPlan := entitlements.PlanFree
	userCtx := usercontext.GetUserContext(c)
	if userCtx.IsLoggedIn && userCtx.IsBusiness {
		currentPlan = entitlements.Normalize(userCtx.Plan)
	}

	options := make([]PlanOption, 0, 3)
	for _, plan := range []entitlements.Plan{entitlements.PlanFree, entitlements.PlanPremium, entitlements.PlanDestacado} {
		limits, err := entitlements.LimitsFor(plan)
		if err != nil {
			continue
		}
		options = append(options, PlanOption{
			Plan:       string(plan),
			PriceCents: planPrices[plan],
			Price:      fmt.Sprintf("$%d.%02d MXN", planPrices[plan]/100, planPrices[plan]%100),
			MaxImages:  limits.MaxImages,
			MaxMenu:    limits.MaxMenuItems,
			Featured:   entitlements.IsFeatured(plan),
			Verified:   entitlements.IsVerified(plan),
			Current:    plan == currentPlan,
		})
	}

	return render(c, "pages/pricing", fiber.Map{
		"Title":     "Planes | Antojado",
		"Plans":     options,
		"Unlimited": entitlements.Unlimited,
	})
}

// HandleCheckout switches the owner's business to the chosen plan. The
// payment step is simulated: the switch happens immediately and an audit
// row records it.
func HandleCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	business, err := repos.Business.GetByUserID(userCtx.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Solo las cuentas de negocio pueden cambiar de plan"}
		return flash.WithError(c, fm).Redirect("/planes")
	}

	newPlan := entitlements.Normalize(c.FormValue("plan"))
	if _, err := entitlements.LimitsFor(newPlan); err != nil {
		fm := fiber.Map{"type": "error", "message": "Ese plan no existe"}
		return flash.WithError(c, fm).Redirect("/planes")
	}

	oldPlan := business.CurrentPlan()
	if oldPlan == string(newPlan) {
		fm := fiber.Map{"type": "error", "message": "Ya tienes ese plan"}
		return flash.WithError(c, fm).Redirect("/planes")
	}

	business.SubscriptionPlan = string(newPlan)
	// Keep the legacy featured flag in sync with the plan
	business.Featured = entitlements.IsFeatured(newPlan)
	if err := repos.Business.Update(business); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Algo salio mal: %s", err)}
		return flash.WithError(c, fm).Redirect("/planes")
	}

	change := models.PlanChange{
		BusinessID: business.ID,
		UserID:     userCtx.UserID,
		FromPlan:   oldPlan,
		ToPlan:     string(newPlan),
		PriceCents: planPrices[newPlan],
	}
	if err := database.GetDB().Create(&change).Error; err != nil {
		// The plan switch itself succeeded, only the audit row is missing
		log.Errorf("plan change audit for business %d failed: %v", business.ID, err)
	}

	_ = session.SetSessionValue(c, usercontext.KeyPlan, string(newPlan))

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Tu negocio ahora tiene el plan %s", newPlan),
	}
	return flash.WithSuccess(c, fm).Redirect("/panel")
}
