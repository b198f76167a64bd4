package http

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var urlCheck = validator.New()

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("urlorempty", urlOrEmpty)
}

// urlOrEmpty accepts an empty string or a valid URL. Sent-but-empty social
// links and websites are allowed and later dropped by the profile merger.
func urlOrEmpty(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return urlCheck.Var(s, "url") == nil
}
