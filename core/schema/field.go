package schema

import (
	"reflect"

	"github.com/dmitrymomot/onboarding/core/validator"
)

// Option is one choice of a select or multiselect field.
type Option struct {
	Value string
	Label string
}

// Constraints narrow the rules implied by a field's type and kind.
// Zero values are ignored.
type Constraints struct {
	MinLength int
	MaxLength int

	// MinItems and MaxItems bound tables and multiselects.
	MinItems int
	MaxItems int

	Min *float64
	Max *float64

	Date *validator.DateConstraints

	// TotalField names the table column whose values must add up to 100.
	TotalField   string
	TotalMessage string

	// MustBeTrue turns a boolean into a declaration.
	MustBeTrue bool
}

// Predicate decides whether a conditional field applies to a record.
type Predicate func(Record) bool

// FieldEquals applies when the value at path equals want.
func FieldEquals(path string, want any) Predicate {
	return func(r Record) bool {
		got, ok := Lookup(r, path)
		return ok && reflect.DeepEqual(got, want)
	}
}

// FieldNotEquals applies when the value at path is present and differs from want.
func FieldNotEquals(path string, want any) Predicate {
	return func(r Record) bool {
		got, ok := Lookup(r, path)
		return ok && got != nil && !reflect.DeepEqual(got, want)
	}
}

// FieldDescriptor describes one question of an onboarding form.
type FieldDescriptor struct {
	// Name is the key in the record. Dotted names address nested objects,
	// e.g. "documents.businessPlan".
	Name  string
	Label string
	Type  FieldType

	// Kind selects a validator rule set, overriding the one implied by Type.
	Kind string

	Mandatory Mandatory
	Options   []Option

	// AddressFields are the sub-fields of an Address.
	AddressFields []FieldDescriptor
	// Columns are the fields of each row of a Table.
	Columns []FieldDescriptor
	// Item validates each entry of a multiselect holding free values.
	Item *FieldDescriptor

	Constraints Constraints

	// When gates the field: if it returns false the field is skipped.
	When Predicate

	RequiredMessage string
	InvalidMessage  string
}

// DisplayLabel returns Label, or Name when no label is set.
func (f FieldDescriptor) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// OptionValues lists the allowed values of a choice field.
func (f FieldDescriptor) OptionValues() []string {
	values := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		values = append(values, o.Value)
	}
	return values
}

// AppliesTo reports whether the field's condition holds for the record.
func (f FieldDescriptor) AppliesTo(r Record) bool {
	return f.When == nil || f.When(r)
}
