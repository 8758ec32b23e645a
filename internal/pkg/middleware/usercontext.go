package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/database"
	"github.com/antojadoapp/antojado/internal/pkg/session"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes session handling so controllers only read the context.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous user
		c.Locals(usercontext.ContextKey, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		// Anonymous user - no session data
		c.Locals(usercontext.ContextKey, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	email := session.GetSessionValue(c, usercontext.KeyEmail)
	isBusiness := session.GetSessionValue(c, usercontext.KeyUserType) == "business"
	isAdmin := session.GetSessionValue(c, usercontext.KeyUserRole) == models.ROLE_ADMIN

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		Email:      email,
		IsLoggedIn: true,
		IsBusiness: isBusiness,
		IsAdmin:    isAdmin,
	}

	if isBusiness {
		// Determine plan with session-first strategy
		plan := session.GetSessionValue(c, usercontext.KeyPlan)
		if plan == "" {
			plan = "free"
			if db := database.GetDB(); db != nil {
				if b, err := repository.GetGlobalRepositories().Business.GetByUserID(userCtx.UserID); err == nil {
					plan = b.CurrentPlan()
					userCtx.BusinessID = b.ID
				}
			}
			// cache in session for subsequent requests
			_ = session.SetSessionValue(c, usercontext.KeyPlan, plan)
		} else if b, err := repository.GetGlobalRepositories().Business.GetByUserID(userCtx.UserID); err == nil {
			userCtx.BusinessID = b.ID
		}
		userCtx.Plan = plan
	}

	c.Locals(usercontext.ContextKey, userCtx)

	return c.Next()
}
