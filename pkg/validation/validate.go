package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	cookieNameRe = regexp.MustCompile("^[!#$%&'*+\\-.^_`|~0-9A-Za-z]+$")
	snakeCaseRe  = regexp.MustCompile(`^[a-z]+(_[a-z]+)*$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("cookie_name", validateCookieName)
	_ = validate.RegisterValidation("snake_case", validateSnakeCase)
}

// Struct validates s against its `validate` tags, including the custom
// cookie_name and snake_case tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// Var validates a single value against tag.
func Var(field any, tag string) error {
	return validate.Var(field, tag)
}

// validateCookieName accepts an RFC 6265 cookie-name token.
func validateCookieName(fl validator.FieldLevel) bool {
	return cookieNameRe.MatchString(fl.Field().String())
}

func validateSnakeCase(fl validator.FieldLevel) bool {
	return snakeCaseRe.MatchString(fl.Field().String())
}
