package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livestock-app/config"
	"livestock-app/middleware"
	"livestock-app/models"
	"livestock-app/services"
	"livestock-app/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.JWTSecret = "middleware-secret"
	db := testutil.NewDB(t)
	auth := middleware.NewAuthMiddleware(db)

	app := fiber.New()
	app.Get("/livestock", auth.Authenticate, auth.CheckPermission("livestock.view"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app, db
}

func session(t *testing.T, db *gorm.DB, id string, active bool, expires time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserSession{
		UserID:         7,
		SessionID:      id,
		IsActive:       active,
		LastActivityAt: time.Now(),
		ExpiresAt:      expires,
	}).Error)
}

func request(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/livestock", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthenticate(t *testing.T) {
	app, db := setupApp(t)
	expires := time.Now().Add(time.Hour)
	session(t, db, "live", true, expires)
	session(t, db, "closed", false, expires)
	session(t, db, "stale", true, time.Now().Add(-time.Minute))

	token, err := services.SignToken(7, "live", []string{"livestock.view"}, expires)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, request(t, app, token))

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "not-a-jwt"))

	for _, id := range []string{"closed", "stale", "unknown"} {
		token, err := services.SignToken(7, id, []string{"livestock.view"}, expires)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, token), id)
	}

	config.JWTSecret = "rotated"
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, token))
}

func TestCheckPermission(t *testing.T) {
	app, db := setupApp(t)
	expires := time.Now().Add(time.Hour)
	session(t, db, "live", true, expires)

	token, err := services.SignToken(7, "live", []string{"order.view"}, expires)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, request(t, app, token))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	app.Use(middleware.RequestLogger(zap.New(core)))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.EqualValues(t, fiber.StatusNoContent, entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "/boom", entries[1].ContextMap()["path"])
}
