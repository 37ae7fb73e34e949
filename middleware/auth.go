package middleware

import (
	"strings"
	"time"

	"livestock-app/config"
	"livestock-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthMiddlewareStruct struct {
	DB *gorm.DB
}

func NewAuthMiddleware(db *gorm.DB) *AuthMiddlewareStruct {
	return &AuthMiddlewareStruct{DB: db}
}

func unauthorized(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

// Authenticate memvalidasi Bearer token dan session aktif, lalu menyimpan
// userID, sessionID dan permissions ke context
func (a *AuthMiddlewareStruct) Authenticate(ctx *fiber.Ctx) error {
	// Ambil header Authorization
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return unauthorized(ctx, "Missing Authorization header")
	}

	// Ambil token dari "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return unauthorized(ctx, "Invalid Authorization header format")
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		// Pastikan metode signing yang digunakan sesuai
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid signing method")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return unauthorized(ctx, "Unauthorized: Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(ctx, "Unauthorized: Invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return unauthorized(ctx, "Unauthorized: Invalid user ID")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return unauthorized(ctx, "Unauthorized: Invalid sessionID")
	}

	var session models.UserSession
	if err := a.DB.Where("session_id = ? AND is_active = ? AND expires_at > ?", sessionID, true, time.Now()).
		First(&session).Error; err != nil {
		return unauthorized(ctx, "Unauthorized: Invalid sessionID")
	}
	// Update last_activity di user_session
	a.DB.Model(&session).Update("last_activity_at", time.Now())

	permissions := []string{}
	if raw, ok := claims["Permission"].([]interface{}); ok {
		for _, p := range raw {
			if name, ok := p.(string); ok {
				permissions = append(permissions, name)
			}
		}
	}

	ctx.Locals("userID", userID)
	ctx.Locals("sessionID", sessionID)
	ctx.Locals("permissions", permissions)

	return ctx.Next()
}

// CheckPermission membaca claim Permission dari token, tanpa query ke database
func (a *AuthMiddlewareStruct) CheckPermission(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		permissions, ok := c.Locals("permissions").([]string)
		if !ok {
			return unauthorized(c, "Unauthorized: Invalid user ID")
		}

		for _, p := range permissions {
			if p == requiredPermission {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Forbidden: You do not have permission",
		})
	}
}

// RequestLogger menulis satu baris log untuk setiap request
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if userID, ok := c.Locals("userID").(float64); ok {
			fields = append(fields, zap.Int("user_id", int(userID)))
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("request", fields...)
		} else {
			log.Info("request", fields...)
		}
		return err
	}
}
