package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxLabelLength bounds raw event labels
	MaxLabelLength = 4096

	// Character names are Jason atoms: lower-case start, then word characters
	characterPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

func init() {
	validate = validator.New()
	mustRegister("vertexkind", func(fl validator.FieldLevel) bool {
		_, err := plotgraph.ParseVertexType(fl.Field().String())
		return err == nil
	})
	mustRegister("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logging.LevelFromString(fl.Field().String())
		return err == nil
	})
	mustRegister("character", func(fl validator.FieldLevel) bool {
		return characterPattern.MatchString(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Struct validates v against its `validate` struct tags and returns the first
// failure in a user-friendly format.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateLabel checks a raw event label.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("label exceeds maximum length of %d characters", MaxLabelLength)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "vertexkind":
			return fmt.Errorf("%s: unknown event kind %q (expected one of %s)", field, e.Value(), strings.Join(plotgraph.VertexKindNames(), ", "))
		case "loglevel":
			return fmt.Errorf("%s: unknown log level %q", field, e.Value())
		case "character":
			return fmt.Errorf("%s: %q is not a valid character name", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
