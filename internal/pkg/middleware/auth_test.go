package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

func newAdminGateApp(ctx usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(usercontext.ContextKey, ctx)
		return c.Next()
	})
	app.Get("/admin", RequireAPIAdminAuth, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireAPIAdminAuth(t *testing.T) {
	cases := []struct {
		name string
		ctx  usercontext.UserContext
		want int
	}{
		{"anonymous", usercontext.UserContext{}, fiber.StatusUnauthorized},
		{"regular user", usercontext.UserContext{UserID: 1, IsLoggedIn: true}, fiber.StatusForbidden},
		{"business owner", usercontext.UserContext{UserID: 2, IsLoggedIn: true, IsBusiness: true}, fiber.StatusForbidden},
		{"admin", usercontext.UserContext{UserID: 3, IsLoggedIn: true, IsAdmin: true}, fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAdminGateApp(tc.ctx)
			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
