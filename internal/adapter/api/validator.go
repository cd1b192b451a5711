package api

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var couponCode = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// CustomValidator plugs go-playground/validator into echo's c.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("couponcode", func(fl validator.FieldLevel) bool {
		return couponCode.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(time.Now())
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
