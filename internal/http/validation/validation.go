package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError turns a gin bind failure into a field -> message map
// keyed by the json tag of dst, so the client can highlight inputs.
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

	// type mismatches and malformed bodies
	out["_"] = "Dữ liệu gửi lên không hợp lệ."
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
		return "Trường này là bắt buộc."
	case "email":
		return "Email không hợp lệ."
	case "min":
		return "Tối thiểu " + param + " ký tự."
	case "max":
		return "Tối đa " + param + " ký tự."
	case "gt":
		return "Giá trị phải lớn hơn " + param + "."
	case "oneof":
		return "Giá trị không được hỗ trợ."
	default:
		return "Giá trị không hợp lệ."
	}
}
