// pkg/config/validate.go

package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// pattern must compile; it ends up in grep -E
		_ = validate.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
			_, err := regexp.Compile(fl.Field().String())
			return err == nil
		})
		// values are embedded in a shell script one per line
		_ = validate.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), "\r\n")
		})
	})
	return validate
}

// Validate checks cfg and reports every violation at once.
func Validate(cfg *Config) error {
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return glimpse_err.NewInternalError("config validation failed", err)
	}

	var result *multierror.Error
	for _, fe := range verrs {
		result = multierror.Append(result, fmt.Errorf("%s: %s", keyOf(fe), describe(fe)))
	}
	result.ErrorFormat = func(errs []error) string {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = "  - " + e.Error()
		}
		return fmt.Sprintf("%d config problem(s):\n%s", len(errs), strings.Join(lines, "\n"))
	}

	return glimpse_err.NewValidationErrorWithCause("invalid configuration", result.ErrorOrNil(),
		"Check "+RepoConfigName+" and "+UserConfigPath(),
		"Run 'glimpse config' to see the effective values")
}

// keyOf turns Config.Hooks.SourcePattern into hooks.source_pattern.
func keyOf(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "regexp":
		return "is not a valid regular expression"
	case "singleline":
		return "must be a single line"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag()
	}
}
