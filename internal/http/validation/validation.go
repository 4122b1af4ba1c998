package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError turns a gin bind/validation error into a field->message map.
// dst is the bound struct pointer, used to read the json tags.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fieldKey(dst, fe.StructField())
			out[key] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// other bind failures (type mismatch etc)
	out["_"] = "Request body is invalid."
	return out
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag := f.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(structField)
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + param + "."
	case "max":
		return "Must be at most " + param + "."
	case "oneof":
		return "Must be one of: " + param + "."
	case "gte":
		return "Must be " + param + " or more."
	case "lte":
		return "Must be " + param + " or less."
	default:
		return "Invalid value."
	}
}
