package form

import (
	"fmt"
	"math"

	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/validator"
)

// walker visits every field of a record once, collecting failures.
type walker struct {
	record schema.Record
	opts   options
	errs   validator.ValidationErrors
	seen   map[string]struct{}
	err    error
}

func newWalker(record schema.Record, opts []Option) *walker {
	w := &walker{record: record, seen: make(map[string]struct{})}
	for _, opt := range opts {
		opt(&w.opts)
	}
	return w
}

func (w *walker) result() Result {
	return Result{
		Valid:    w.errs.IsEmpty(),
		Errors:   w.errs.Map(),
		failures: w.errs,
	}
}

func (w *walker) fail(path string, res validator.Result) {
	if _, dup := w.seen[path]; dup {
		return
	}
	w.seen[path] = struct{}{}
	w.errs.Add(validator.ValidationError{
		Field:             path,
		Message:           res.Message,
		Code:              res.Code,
		TranslationKey:    "validation." + string(res.Code),
		TranslationValues: map[string]any{"field": path},
	})
}

func (w *walker) field(f schema.FieldDescriptor, path string, value any) {
	if !f.AppliesTo(w.record) {
		return
	}

	if !schema.IsFilled(value) {
		if f.Mandatory.AppliesTo(w.opts.stage) {
			w.fail(path, requiredResult(f))
		}
		return
	}

	switch f.Type {
	case schema.TypeAddress:
		w.address(f, path, value)
	case schema.TypeTable:
		w.table(f, path, value)
	case schema.TypeMultiselect:
		w.list(f, path, value)
	case schema.TypeSelect:
		w.choice(f, path, value)
	case schema.TypeBoolean:
		w.boolean(f, path, value)
	default:
		w.scalar(f, path, value)
	}
}

func requiredResult(f schema.FieldDescriptor) validator.Result {
	switch {
	case f.RequiredMessage != "":
		return validator.Fail(validator.CodeRequired, f.RequiredMessage)
	case f.Constraints.MustBeTrue:
		return validator.Fail(validator.CodeRequired, f.DisplayLabel()+" must be confirmed")
	}
	return validator.Fail(validator.CodeRequired, f.DisplayLabel()+" is required")
}

func (w *walker) address(f schema.FieldDescriptor, path string, value any) {
	addr, ok := schema.AsMap(value)
	if !ok {
		w.fail(path, validator.Fail(validator.CodeInvalid, f.DisplayLabel()+" must be an address"))
		return
	}
	for _, sub := range f.AddressFields {
		w.field(sub, schema.JoinPath(path, sub.Name), addr[sub.Name])
	}
}

func (w *walker) table(f schema.FieldDescriptor, path string, value any) {
	rows, ok := schema.AsSlice(value)
	if !ok {
		w.fail(path, validator.Fail(validator.CodeInvalid, f.DisplayLabel()+" must be a list"))
		return
	}

	c := f.Constraints
	boundsOK := w.bounds(f, path, len(rows))

	before := len(w.errs)
	for i, row := range rows {
		m, ok := schema.AsMap(row)
		if !ok {
			w.fail(schema.IndexPath(path, i, ""), validator.Fail(validator.CodeInvalid, "Each entry must be an object"))
			continue
		}
		for _, col := range f.Columns {
			w.field(col, schema.IndexPath(path, i, col.Name), m[col.Name])
		}
	}

	// Totals are only meaningful once every row is structurally valid.
	if !boundsOK || len(w.errs) != before || c.TotalField == "" {
		return
	}
	var hundredths int64
	for _, row := range rows {
		m, _ := schema.AsMap(row)
		n, _, ok := validator.Number(m[c.TotalField])
		if ok {
			hundredths += int64(math.Round(n * 100))
		}
	}
	if hundredths != 10000 {
		msg := c.TotalMessage
		if msg == "" {
			msg = f.DisplayLabel() + " must total 100%"
		}
		w.fail(path, validator.Fail(validator.CodeRange, msg))
	}
}

func (w *walker) bounds(f schema.FieldDescriptor, path string, n int) bool {
	c := f.Constraints
	label := f.DisplayLabel()
	if c.MinItems > 0 && n < c.MinItems {
		w.fail(path, validator.Fail(validator.CodeLength, fmt.Sprintf("%s must have at least %d item(s)", label, c.MinItems)))
		return false
	}
	if c.MaxItems > 0 && n > c.MaxItems {
		w.fail(path, validator.Fail(validator.CodeLength, fmt.Sprintf("%s cannot have more than %d items", label, c.MaxItems)))
		return false
	}
	return true
}

func (w *walker) list(f schema.FieldDescriptor, path string, value any) {
	items, ok := schema.AsSlice(value)
	if !ok {
		w.fail(path, validator.Fail(validator.CodeInvalid, f.DisplayLabel()+" must be a list"))
		return
	}
	w.bounds(f, path, len(items))

	for i, item := range items {
		itemPath := schema.IndexPath(path, i, "")
		if f.Item != nil {
			d := *f.Item
			if d.Label == "" {
				d.Label = f.DisplayLabel()
			}
			w.field(d, itemPath, item)
			continue
		}
		res := validator.OneOf(item, f.OptionValues(), f.DisplayLabel())
		if !res.Valid {
			w.fail(itemPath, invalid(f, res))
		}
	}
}

func (w *walker) choice(f schema.FieldDescriptor, path string, value any) {
	res := validator.OneOf(value, f.OptionValues(), f.DisplayLabel())
	if !res.Valid {
		w.fail(path, invalid(f, res))
	}
}

func (w *walker) boolean(f schema.FieldDescriptor, path string, value any) {
	b, ok := value.(bool)
	if !ok {
		w.fail(path, validator.Fail(validator.CodeInvalid, f.DisplayLabel()+" must be yes or no"))
		return
	}
	if f.Constraints.MustBeTrue && !b {
		w.fail(path, requiredResult(schema.FieldDescriptor{
			Label:           f.DisplayLabel(),
			RequiredMessage: f.RequiredMessage,
			Constraints:     schema.Constraints{MustBeTrue: true},
		}))
	}
}

func (w *walker) scalar(f schema.FieldDescriptor, path string, value any) {
	kind := kindOf(f)
	fn, ok := validator.Lookup(kind)
	if !ok {
		w.err = fmt.Errorf("%w: %q for field %s", validator.ErrUnknownKind, kind, path)
		return
	}

	c := f.Constraints
	opts := validator.Options{
		Label:   f.DisplayLabel(),
		Today:   w.opts.today,
		Minimum: c.Min,
		Maximum: c.Max,
		Date:    c.Date,
	}
	if c.MinLength > 0 || c.MaxLength > 0 {
		opts.Limits = &validator.Limits{Min: c.MinLength, Max: c.MaxLength}
	}

	if res := fn(value, opts); !res.Valid {
		w.fail(path, invalid(f, res))
	}
}

// invalid applies a field's custom message to rule failures. Markup and
// presence failures keep their standard wording.
func invalid(f schema.FieldDescriptor, res validator.Result) validator.Result {
	if f.InvalidMessage == "" || res.Code == validator.CodeHTML || res.Code == validator.CodeRequired {
		return res
	}
	return validator.Fail(res.Code, f.InvalidMessage)
}

// kindOf resolves the validator for a scalar field: an explicit kind first,
// then a DFSA rule bound to the field name, then the default for its type.
func kindOf(f schema.FieldDescriptor) string {
	if f.Kind != "" {
		return f.Kind
	}
	if kind, ok := validator.KindForField(f.Name); ok {
		return kind
	}
	switch f.Type {
	case schema.TypeMultilineText:
		return validator.KindTextarea
	case schema.TypeWholeNumber:
		return validator.KindWholeNumber
	case schema.TypeDecimal:
		return validator.KindDecimal
	case schema.TypePercentage:
		return validator.KindPercentage
	case schema.TypeCurrency:
		return validator.KindCurrency
	case schema.TypeURL:
		return validator.KindURL
	case schema.TypeDate, schema.TypeDateOnly, schema.TypeDateTime:
		return validator.KindDate
	case schema.TypeFileUpload:
		return validator.KindDocument
	case schema.TypeBoolean:
		return validator.KindBoolean
	}
	return validator.KindText
}
