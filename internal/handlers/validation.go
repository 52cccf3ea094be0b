package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/notes-app/internal/errors"
)

func init() {
	// Report validation errors under the form field names clients submit.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// fieldErrors turns a binding error into per-field messages.
func fieldErrors(err error) apierrors.FieldErrors {
	fields := apierrors.FieldErrors{}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fields["form"] = []string{"Invalid request body"}
		return fields
	}

	for _, fe := range ve {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "email":
		return "Invalid email address."
	default:
		return "Invalid value."
	}
}
