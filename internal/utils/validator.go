package utils

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	Validate     *validator.Validate
	validateOnce sync.Once

	phonePattern = regexp.MustCompile(`^(\(\d{3}\) \d{3}-\d{4}|\+?[0-9 ()-]{7,20})$`)
)

var subscriptions = map[string]struct{}{
	"starter":  {},
	"pro":      {},
	"business": {},
}

func InitValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("subscription", func(fl validator.FieldLevel) bool {
			_, ok := subscriptions[fl.Field().String()]
			return ok
		})
		Validate = v
	})
	return Validate
}

// IsValidEmail runs the same check as the `email` struct tag.
func IsValidEmail(email string) bool {
	return InitValidator().Var(email, "required,email") == nil
}

func IsValidSubscription(s string) bool {
	_, ok := subscriptions[s]
	return ok
}
