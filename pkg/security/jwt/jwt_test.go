package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirezy/backend/pkg/account"
)

func testAccount() account.Account {
	return account.Account{
		ID:       42,
		Username: "alice",
		Role:     account.RoleUser,
	}
}

func testApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		id, _ := AccountID(c)
		return c.JSON(fiber.Map{"id": id, "role": c.Locals(LocalRole)})
	})
	app.Get("/admin", NewAuthMiddleware(secret, issuer), Requires(account.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestGenerateAndParse(t *testing.T) {
	gen := NewGenerator("secret", "hirezy-backend", time.Hour)
	token, err := gen.Generate(context.Background(), testAccount())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	app := testApp("secret", "hirezy-backend")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A bare token without the Bearer prefix is accepted too.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejects(t *testing.T) {
	gen := NewGenerator("secret", "hirezy-backend", time.Hour)
	token, err := gen.Generate(context.Background(), testAccount())
	require.NoError(t, err)

	app := testApp("secret", "hirezy-backend")

	// missing header
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// wrong secret
	other := testApp("other-secret", "hirezy-backend")
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = other.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// wrong issuer
	wrongIssuer := testApp("secret", "someone-else")
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = wrongIssuer.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredToken(t *testing.T) {
	gen := NewGenerator("secret", "hirezy-backend", -time.Minute)
	token, err := gen.Generate(context.Background(), testAccount())
	require.NoError(t, err)

	app := testApp("secret", "hirezy-backend")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequiresRole(t *testing.T) {
	gen := NewGenerator("secret", "hirezy-backend", time.Hour)
	app := testApp("secret", "hirezy-backend")

	userToken, err := gen.Generate(context.Background(), testAccount())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := account.Account{ID: 1, Username: "admin", Role: account.RoleAdmin}
	adminToken, err := gen.Generate(context.Background(), admin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
