package dto

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	phonePattern = regexp.MustCompile(`^(\+84|0)[0-9]{9,10}$`)
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || phonePattern.MatchString(value)
		})
	})
	return validate
}

// Validate runs the struct tags and returns a 400 *fiber.Error listing the failing fields.
func Validate(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu không hợp lệ: "+strings.Join(fields, ", "))
}
