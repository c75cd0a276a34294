package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/onboarding/core/sanitizer"
)

var (
	// ErrNotStruct is returned by ValidateStruct for anything but a pointer to a struct.
	ErrNotStruct = errors.New("validator: must pass a pointer to struct")
	// ErrUnknownRule is returned when a validate tag names an unregistered rule.
	ErrUnknownRule = errors.New("validator: unknown tag rule")
)

// TagField is the struct field a tag rule is checking.
type TagField struct {
	// Path is the json name of the field, dotted for nested structs.
	Path string
	// Label names the field in messages; taken from the label tag.
	Label string
	Value reflect.Value
}

// TagFunc checks one field against a tag rule and returns nil when it passes.
type TagFunc func(f TagField, params []string) *ValidationError

var (
	tagMu    sync.RWMutex
	tagRules = map[string]TagFunc{
		"required": requiredTag,
		"min":      minTag,
		"max":      maxTag,
		"len":      lenTag,
		"between":  betweenTag,
		"in":       inTag,
		"not_in":   notInTag,
		"prefix":   prefixTag,
		"nohtml":   noHTMLTag,
		"uuid":     uuidTag,
		"positive": positiveTag,
		"nonzero":  nonZeroTag,
		"kind":     kindTag,
	}
)

// RegisterTag adds or replaces a rule usable in validate tags.
func RegisterTag(name string, fn TagFunc) {
	tagMu.Lock()
	defer tagMu.Unlock()
	tagRules[name] = fn
}

// ValidateStruct checks a struct against its validate tags and returns
// ValidationErrors listing every failing field in declaration order.
//
// Rules are separated by semicolons, parameters follow a colon and are
// comma separated:
//
//	AccountID string `json:"accountId" label:"Account" validate:"required;max:128;nohtml"`
//	Email     string `validate:"kind:email"`
//
// Untagged struct fields are descended into. Rules other than required
// skip zero values, so optional fields only need required left out.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStruct
	}

	var errs ValidationErrors
	if err := validateStruct(rv.Elem(), "", &errs); err != nil {
		return err
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStruct(rv reflect.Value, prefix string, errs *ValidationErrors) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		path := fieldName(sf)
		if prefix != "" {
			path = prefix + "." + path
		}
		field := rv.Field(i)

		if tag == "" {
			switch {
			case field.Kind() == reflect.Struct:
				if err := validateStruct(field, path, errs); err != nil {
					return err
				}
			case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.Struct:
				if err := validateStruct(field.Elem(), path, errs); err != nil {
					return err
				}
			}
			continue
		}

		label := sf.Tag.Get("label")
		if label == "" {
			label = sf.Name
		}
		if field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
		}
		if err := validateField(TagField{Path: path, Label: label, Value: field}, tag, errs); err != nil {
			return err
		}
	}
	return nil
}

// validateField stops at the first failing rule of a field.
func validateField(f TagField, tag string, errs *ValidationErrors) error {
	tagMu.RLock()
	defer tagMu.RUnlock()

	for _, rule := range strings.Split(tag, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		name, rawParams, _ := strings.Cut(rule, ":")
		name = strings.TrimSpace(name)

		var params []string
		if rawParams = strings.TrimSpace(rawParams); rawParams != "" {
			params = strings.Split(rawParams, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := tagRules[name]
		if !ok {
			return fmt.Errorf("%w: %q on %s", ErrUnknownRule, name, f.Path)
		}
		if name != "required" && isZero(f.Value) {
			continue
		}
		if ve := fn(f, params); ve != nil {
			errs.Add(*ve)
			return nil
		}
	}
	return nil
}

func fieldName(sf reflect.StructField) string {
	if name, _, _ := strings.Cut(sf.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	return sf.Name
}

func isZero(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	}
	return v.IsZero()
}

func tagError(f TagField, code Code, key, message string, values map[string]any) *ValidationError {
	tv := map[string]any{"field": f.Path}
	for k, v := range values {
		tv[k] = v
	}
	return &ValidationError{
		Field:             f.Path,
		Message:           message,
		Code:              code,
		TranslationKey:    "validation." + key,
		TranslationValues: tv,
	}
}

func requiredTag(f TagField, _ []string) *ValidationError {
	if !isZero(f.Value) && !(f.Value.Kind() == reflect.Pointer && f.Value.IsNil()) {
		return nil
	}
	return tagError(f, CodeRequired, "required", f.Label+" is required", nil)
}

func intParam(params []string) (int, bool) {
	if len(params) < 1 {
		return 0, false
	}
	n, err := strconv.Atoi(params[0])
	return n, err == nil
}

func floatParam(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// numericValue reads ints, uints and floats as float64.
func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

func minTag(f TagField, params []string) *ValidationError {
	if len(params) < 1 {
		return nil
	}
	switch f.Value.Kind() {
	case reflect.String:
		n, ok := intParam(params)
		if !ok || sanitizer.RuneLength(strings.TrimSpace(f.Value.String())) >= n {
			return nil
		}
		return tagError(f, CodeLength, "min_length",
			fmt.Sprintf("%s must be at least %d characters", f.Label, n), map[string]any{"min": n})
	case reflect.Slice, reflect.Array, reflect.Map:
		n, ok := intParam(params)
		if !ok || f.Value.Len() >= n {
			return nil
		}
		return tagError(f, CodeLength, "min_items",
			fmt.Sprintf("%s must have at least %d items", f.Label, n), map[string]any{"min": n})
	}
	v, ok := numericValue(f.Value)
	limit, pok := floatParam(params[0])
	if !ok || !pok || v >= limit {
		return nil
	}
	return tagError(f, CodeRange, "min",
		fmt.Sprintf("%s must be at least %s", f.Label, params[0]), map[string]any{"min": limit})
}

func maxTag(f TagField, params []string) *ValidationError {
	if len(params) < 1 {
		return nil
	}
	switch f.Value.Kind() {
	case reflect.String:
		n, ok := intParam(params)
		if !ok || sanitizer.RuneLength(strings.TrimSpace(f.Value.String())) <= n {
			return nil
		}
		return tagError(f, CodeLength, "max_length",
			fmt.Sprintf("%s must not exceed %d characters", f.Label, n), map[string]any{"max": n})
	case reflect.Slice, reflect.Array, reflect.Map:
		n, ok := intParam(params)
		if !ok || f.Value.Len() <= n {
			return nil
		}
		return tagError(f, CodeLength, "max_items",
			fmt.Sprintf("%s must have at most %d items", f.Label, n), map[string]any{"max": n})
	}
	v, ok := numericValue(f.Value)
	limit, pok := floatParam(params[0])
	if !ok || !pok || v <= limit {
		return nil
	}
	return tagError(f, CodeRange, "max",
		fmt.Sprintf("%s cannot exceed %s", f.Label, params[0]), map[string]any{"max": limit})
}

func lenTag(f TagField, params []string) *ValidationError {
	n, ok := intParam(params)
	if !ok {
		return nil
	}
	var got int
	switch f.Value.Kind() {
	case reflect.String:
		got = sanitizer.RuneLength(f.Value.String())
	case reflect.Slice, reflect.Array, reflect.Map:
		got = f.Value.Len()
	default:
		return nil
	}
	if got == n {
		return nil
	}
	return tagError(f, CodeLength, "exact_length",
		fmt.Sprintf("%s must be exactly %d characters", f.Label, n), map[string]any{"len": n})
}

func betweenTag(f TagField, params []string) *ValidationError {
	if len(params) < 2 {
		return nil
	}
	if ve := minTag(f, params[:1]); ve != nil {
		return ve
	}
	return maxTag(f, params[1:])
}

func inTag(f TagField, params []string) *ValidationError {
	if f.Value.Kind() != reflect.String || slices.Contains(params, f.Value.String()) {
		return nil
	}
	return tagError(f, CodeInvalid, "in",
		fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(params, ", ")),
		map[string]any{"values": params})
}

func notInTag(f TagField, params []string) *ValidationError {
	if f.Value.Kind() != reflect.String || !slices.Contains(params, f.Value.String()) {
		return nil
	}
	return tagError(f, CodeInvalid, "not_in", fmt.Sprintf("%s cannot be %q", f.Label, f.Value.String()), nil)
}

func prefixTag(f TagField, params []string) *ValidationError {
	if f.Value.Kind() != reflect.String || len(params) == 0 {
		return nil
	}
	for _, p := range params {
		if strings.HasPrefix(f.Value.String(), p) {
			return nil
		}
	}
	return tagError(f, CodeFormat, "prefix",
		fmt.Sprintf("%s must start with %s", f.Label, strings.Join(params, " or ")),
		map[string]any{"prefix": params})
}

func noHTMLTag(f TagField, _ []string) *ValidationError {
	switch f.Value.Kind() {
	case reflect.String:
		if sanitizer.ContainsHTML(f.Value.String()) {
			return tagError(f, CodeHTML, "html", HTMLMessage, nil)
		}
	case reflect.Slice, reflect.Array:
		if f.Value.Type().Elem().Kind() != reflect.String {
			return nil
		}
		for i := range f.Value.Len() {
			if sanitizer.ContainsHTML(f.Value.Index(i).String()) {
				return tagError(f, CodeHTML, "html", HTMLMessage, nil)
			}
		}
	}
	return nil
}

func uuidTag(f TagField, _ []string) *ValidationError {
	if f.Value.Kind() != reflect.String {
		return nil
	}
	if _, err := uuid.Parse(f.Value.String()); err == nil {
		return nil
	}
	return tagError(f, CodeFormat, "uuid", f.Label+" must be a valid UUID", nil)
}

func positiveTag(f TagField, _ []string) *ValidationError {
	if v, ok := numericValue(f.Value); !ok || v > 0 {
		return nil
	}
	return tagError(f, CodeRange, "positive", f.Label+" must be positive", nil)
}

func nonZeroTag(f TagField, _ []string) *ValidationError {
	if !f.Value.IsZero() {
		return nil
	}
	return tagError(f, CodeRange, "nonzero", f.Label+" must not be zero", nil)
}

// kindTag runs a registered field kind, e.g. kind:email.
func kindTag(f TagField, params []string) *ValidationError {
	if len(params) < 1 || !f.Value.CanInterface() {
		return nil
	}
	res, err := Validate(params[0], f.Value.Interface(), Options{Label: f.Label})
	if err != nil {
		return tagError(f, CodeInvalid, "kind", err.Error(), nil)
	}
	if res.Valid {
		return nil
	}
	return tagError(f, res.Code, "kind", res.Message, map[string]any{"kind": params[0]})
}
