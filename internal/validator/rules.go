package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"kamau_backend/internal/models"
)

// registerCustomRules installs the marketplace vocabulary rules. A failed
// registration is a startup error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("service-category", validateServiceCategory)
	mustRegister("service-area", validateServiceArea)
	mustRegister("verification-status", validateVerificationStatus)
	mustRegister("nepali-phone", validatePhone)
}

// Empty values pass; 'required' handles presence.

func validateServiceCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsValidServiceCategory(value)
}

func validateServiceArea(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsValidServiceArea(value)
}

func validateVerificationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsValidVerificationStatus(value)
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if len(value) != 10 {
		return false
	}
	for _, c := range value {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
