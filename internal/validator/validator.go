// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notification_type", validateNotificationType)
		_ = v.RegisterValidation("payment_frequency", validatePaymentFrequency)
	}
}

func validateNotificationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "remind_for_maturity", "remind_for_payment":
		return true
	}
	return false
}

func validatePaymentFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "quarterly", "biannual", "annual":
		return true
	}
	return false
}
