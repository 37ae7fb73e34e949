package controllers

import (
	"livestock-app/dto"

	"github.com/gofiber/fiber/v2"
)

// bind parses the JSON body into req and runs its validate tags.
func bind(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return dto.Validate(req)
}
