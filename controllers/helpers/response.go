package helpers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Success(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse maps service errors to the response envelope. *fiber.Error keeps its
// code and message, anything else is a 500.
func ErrorResponse(ctx *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ctx.Status(fe.Code).JSON(fiber.Map{
			"success": false,
			"message": fe.Message,
		})
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Không tìm thấy dữ liệu",
		})
	}

	zap.L().Error("request failed",
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.Path()),
		zap.Error(err),
	)
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func BadRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// UserID membaca user id yang diset AuthMiddleware
func UserID(ctx *fiber.Ctx) int {
	if id, ok := ctx.Locals("userID").(float64); ok {
		return int(id)
	}
	return 0
}

// ParamID reads a positive numeric route parameter.
func ParamID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := ctx.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}
	return uint(id), nil
}

// QueryIDs parses a comma separated list of ids, ignoring blanks and invalid entries.
func QueryIDs(ctx *fiber.Ctx, key string) []uint {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil
	}
	ids := []uint{}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err == nil && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}
