// Package validation checks form snapshots against each form's required
// field rules. Checks never stop at the first failure: every failing field
// gets its message in a single pass.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Result is the outcome of one validation pass
type Result struct {
	Valid  bool
	Errors map[form.Field]string
	order  []form.Field
}

// Fields returns the failing fields in the order they were checked
func (r Result) Fields() []form.Field {
	out := make([]form.Field, 0, len(r.Errors))
	for _, f := range r.order {
		if _, ok := r.Errors[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report failures under the form field name rather than the Go name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	return v
}

// notBlank fails strings that are empty after trimming whitespace
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// run validates input (a pointer to a tagged struct) and maps each failure
// to its user-facing message
func run(formName string, input any, order []form.Field, messages map[form.Field]string) Result {
	res := Result{
		Valid:  true,
		Errors: make(map[form.Field]string),
		order:  order,
	}

	err := validate.Struct(input)
	if err == nil {
		return res
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		// Only reachable with a programming error in the input struct
		logger.Error("Validator rejected form input",
			zap.String("form", formName),
			zap.Error(err))
		res.Valid = false
		return res
	}

	for _, fe := range fieldErrors {
		f := form.Field(fe.Field())
		res.Errors[f] = messageFor(f, fe, messages)
	}
	res.Valid = len(res.Errors) == 0

	return res
}

func messageFor(f form.Field, fe validator.FieldError, messages map[form.Field]string) string {
	if msg, ok := messages[f]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	default:
		return fe.Field() + " is invalid"
	}
}
