package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrNotStruct is returned by SanitizeStruct for anything but a pointer to a struct.
	ErrNotStruct = errors.New("sanitizer: must pass a pointer to struct")
	// ErrUnknownSanitizer is returned when a sanitize tag names an unregistered function.
	ErrUnknownSanitizer = errors.New("sanitizer: unknown sanitizer")
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"trim_lower":  TrimToLower,
		"trim_upper":  TrimToUpper,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"strip_html":  StripHTML,
		"no_control":  RemoveControlChars,
		"digits":      KeepDigits,
		"phone":       StripPhoneFormatting,
		"filename":    SanitizeFilename,

		"text": func(s string) string {
			return RemoveExtraWhitespace(RemoveControlChars(s))
		},
	}
)

// RegisterSanitizer adds or replaces a function usable in sanitize tags.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if n < 0 || RuneLength(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// SanitizeStruct rewrites string fields, string pointers and string slices
// in place, running the comma separated functions of their sanitize tag in
// order. max:N truncates to N characters. Untagged structs are descended into.
//
//	type Upload struct {
//		Filename    string   `sanitize:"trim,no_control"`
//		Description string   `sanitize:"text,max:500"`
//		Tags        []string `sanitize:"trim_lower"`
//	}
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStruct
	}
	return sanitizeStruct(rv.Elem())
}

func sanitizeStruct(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag != "" {
				if err := sanitizeValue(field, tag); err != nil {
					return err
				}
			}
		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			elem := field.Elem()
			switch {
			case elem.Kind() == reflect.String && tag != "":
				if err := sanitizeValue(elem, tag); err != nil {
					return err
				}
			case elem.Kind() == reflect.Struct:
				if err := sanitizeStruct(elem); err != nil {
					return err
				}
			}
		case reflect.Struct:
			if err := sanitizeStruct(field); err != nil {
				return err
			}
		case reflect.Slice:
			if tag == "" || field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := range field.Len() {
				if err := sanitizeValue(field.Index(j), tag); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func sanitizeValue(v reflect.Value, tag string) error {
	s, err := Apply(v.String(), tag)
	if err != nil {
		return err
	}
	v.SetString(s)
	return nil
}

// Apply runs a sanitize tag against a single string.
func Apply(s, tag string) (string, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range strings.Split(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if n, ok := strings.CutPrefix(name, "max:"); ok {
			limit, err := strconv.Atoi(n)
			if err != nil {
				return "", fmt.Errorf("%w: %q", ErrUnknownSanitizer, name)
			}
			s = Truncate(s, limit)
			continue
		}
		fn, ok := registry[name]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownSanitizer, name)
		}
		s = fn(s)
	}
	return s, nil
}
