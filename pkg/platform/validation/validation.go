// Package validation runs struct-tag rules (go-playground/validator) and reports
// failures as a single validationFailed error listing every violation.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	dErrors "shoplist/pkg/domain-errors"
)

// Input limits shared by request schemas and domain constructors.
const (
	MaxListNameLength = 100
	MaxItemNameLength = 200
	MaxSearchLength   = 100
	DefaultPage       = 1
	DefaultPageSize   = 20
	MaxPage           = 1000000
	MaxPageSize       = 100
	DefaultQuantity   = 1
	MaxQuantity       = 1<<31 - 1
)

// Violation describes one failed rule.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(fieldName)
	})
	return instance
}

// fieldName reports fields by their json (or query) name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates v and returns a validationFailed error carrying []Violation, or nil.
// Extra violations (for rules tags cannot express) are appended to the tag results.
func Struct(v any, extra ...Violation) error {
	violations := append([]Violation{}, extra...)

	err := get().Struct(v)
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		tagged := make([]Violation, 0, len(verrs))
		for _, fe := range verrs {
			tagged = append(tagged, Violation{Field: fe.Field(), Rule: fe.Tag(), Message: message(fe)})
		}
		violations = append(tagged, violations...)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "validator misconfigured")
	}

	if len(violations) == 0 {
		return nil
	}
	return Failed(violations...)
}

// Failed builds the validationFailed error for the given violations.
func Failed(violations ...Violation) error {
	return dErrors.New(dErrors.CodeValidation, "dtoIn is not valid").WithDetails(violations)
}

// AtLeastOne is the violation reported when a partial update carries no fields.
func AtLeastOne(fields ...string) Violation {
	return Violation{
		Field:   "dtoIn",
		Rule:    "atLeastOne",
		Message: "at least one of " + strings.Join(fields, ", ") + " must be provided",
	}
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
	}
}
