package schema

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/onboarding/core/validator"
)

// GroupDescriptor is a named section of a form.
type GroupDescriptor struct {
	Name   string
	Title  string
	Fields []FieldDescriptor
}

// Schema is an ordered list of groups describing one onboarding form.
type Schema struct {
	Name   string
	Groups []GroupDescriptor
	// Documents lists the keys of the documents the form requires, in order.
	Documents []string
}

// New assembles a schema and checks it.
func New(name string, groups ...GroupDescriptor) (*Schema, error) {
	s := &Schema{Name: name, Groups: groups}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// Fields returns the top-level fields of all groups in declaration order.
func (s *Schema) Fields() []FieldDescriptor {
	var out []FieldDescriptor
	for _, g := range s.Groups {
		out = append(out, g.Fields...)
	}
	return out
}

// Field returns the top-level field with the given name.
func (s *Schema) Field(name string) (FieldDescriptor, bool) {
	for _, g := range s.Groups {
		for _, f := range g.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldDescriptor{}, false
}

// Group returns the group with the given name.
func (s *Schema) Group(name string) (GroupDescriptor, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupDescriptor{}, false
}

// Check verifies that field names are unique, every type is declared,
// composite fields declare their parts, and every kind is registered.
func (s *Schema) Check() error {
	seen := make(map[string]struct{})
	var errs []error
	for _, g := range s.Groups {
		for _, f := range g.Fields {
			errs = append(errs, checkField(f, "", seen))
		}
	}
	return errors.Join(errs...)
}

func checkField(f FieldDescriptor, parent string, seen map[string]struct{}) error {
	path := JoinPath(parent, f.Name)

	if f.Name == "" {
		return fmt.Errorf("%w: empty name under %q", ErrMalformedField, parent)
	}
	if _, dup := seen[path]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateField, path)
	}
	seen[path] = struct{}{}

	if !f.Type.Valid() {
		return fmt.Errorf("%w: %s has type %q", ErrInvalidFieldType, path, f.Type)
	}
	if f.Kind != "" {
		if _, ok := validator.Lookup(f.Kind); !ok {
			return fmt.Errorf("%w: %s uses %q", ErrUnknownKind, path, f.Kind)
		}
	}

	var errs []error
	switch f.Type {
	case TypeAddress:
		if len(f.AddressFields) == 0 {
			return fmt.Errorf("%w: address %s has no sub-fields", ErrMalformedField, path)
		}
		for _, sub := range f.AddressFields {
			errs = append(errs, checkField(sub, path, seen))
		}
	case TypeTable:
		if len(f.Columns) == 0 {
			return fmt.Errorf("%w: table %s has no columns", ErrMalformedField, path)
		}
		cols := make(map[string]struct{})
		for _, col := range f.Columns {
			errs = append(errs, checkField(col, path, cols))
		}
		if f.Constraints.TotalField != "" {
			if _, ok := cols[JoinPath(path, f.Constraints.TotalField)]; !ok {
				errs = append(errs, fmt.Errorf("%w: table %s totals unknown column %q",
					ErrMalformedField, path, f.Constraints.TotalField))
			}
		}
	case TypeSelect:
		if len(f.Options) == 0 {
			return fmt.Errorf("%w: select %s has no options", ErrMalformedField, path)
		}
	case TypeMultiselect:
		if len(f.Options) == 0 && f.Item == nil {
			return fmt.Errorf("%w: multiselect %s has neither options nor item", ErrMalformedField, path)
		}
		if f.Item != nil && !f.Item.Type.Valid() {
			return fmt.Errorf("%w: %s item has type %q", ErrInvalidFieldType, path, f.Item.Type)
		}
	}

	c := f.Constraints
	if c.MaxLength > 0 && c.MinLength > c.MaxLength {
		errs = append(errs, fmt.Errorf("%w: %s min length exceeds max length", ErrMalformedField, path))
	}
	if c.MaxItems > 0 && c.MinItems > c.MaxItems {
		errs = append(errs, fmt.Errorf("%w: %s min items exceed max items", ErrMalformedField, path))
	}
	return errors.Join(errs...)
}
