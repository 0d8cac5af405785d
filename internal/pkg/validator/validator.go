package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate - validação de struct pelas tags
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - expõe o validador para configuração customizada
func GetValidator() *validator.Validate {
	return validate
}
