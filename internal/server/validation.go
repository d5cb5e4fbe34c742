package server

import (
	"errors"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

// registerValidators installs the filter validation on gin's query binding
// and on the websocket action validator.
func registerValidators() {
	validatorOnce.Do(func() {
		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerFilterValidation(engine)
		}
		registerFilterValidation(actionValidator)
	})
}

func registerFilterValidation(engine *validator.Validate) {
	_ = engine.RegisterValidation("filter", func(fl validator.FieldLevel) bool {
		return validateFilterValue(fl.Field().String()) == nil
	})
}

// validateFilterValue only refuses control characters. Values are otherwise
// forwarded to the catalog exactly as selected.
func validateFilterValue(text string) error {
	for _, r := range text {
		if unicode.IsControl(r) {
			return errors.New("filter value contains control characters")
		}
	}
	return nil
}
