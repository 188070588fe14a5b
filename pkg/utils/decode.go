package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// ErrInvalidBody marks a payload that is not a JSON object.
var ErrInvalidBody = errors.New("invalid request body")

// DecodeJSON unmarshals body into dst. Values of the wrong JSON type are
// left zero in dst and reported by JSON field name in the returned map, so
// callers can still run struct validation over the rest of the payload.
// Malformed JSON yields ErrInvalidBody.
func DecodeJSON(body io.Reader, dst any) (map[string]string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	err = json.Unmarshal(raw, dst)
	if err == nil {
		return nil, nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	return collectTypeErrors(raw, reflect.TypeOf(dst).Elem()), nil
}

// collectTypeErrors decodes each top-level key on its own so every
// mistyped field is reported, not just the first one.
func collectTypeErrors(raw []byte, target reflect.Type) map[string]string {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil
	}

	fields := make(map[string]string)
	for key, value := range object {
		single, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}

		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(single, reflect.New(target).Interface()); errors.As(err, &typeErr) {
			name := typeErr.Field
			if name == "" {
				name = key
			}
			fields[name] = typeMessage(typeErr.Type)
		}
	}

	return fields
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Must be a whole number"
	case reflect.Float32, reflect.Float64:
		return "Must be a number"
	case reflect.String:
		return "Must be a string"
	case reflect.Bool:
		return "Must be true or false"
	default:
		return "Invalid value"
	}
}
