package apperror

import "github.com/dmitrymomot/onboarding/core/validator"

// Collection holds at most one error per field, in insertion order.
// Errors without a field are kept under the empty key.
type Collection struct {
	order []string
	items map[string]*Error
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]*Error)}
}

// Add stores e under its field, replacing any previous error for it.
func (c *Collection) Add(e *Error) {
	if e == nil {
		return
	}
	if c.items == nil {
		c.items = make(map[string]*Error)
	}
	if _, ok := c.items[e.Field]; !ok {
		c.order = append(c.order, e.Field)
	}
	c.items[e.Field] = e
}

// AddResult stores a failed validator result for field and ignores passing ones.
func (c *Collection) AddResult(field string, res validator.Result) {
	c.Add(FromResult(field, res))
}

// Remove drops the error for field.
func (c *Collection) Remove(field string) {
	if _, ok := c.items[field]; !ok {
		return
	}
	delete(c.items, field)
	for i, f := range c.order {
		if f == field {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear drops every error.
func (c *Collection) Clear() {
	c.order = nil
	c.items = make(map[string]*Error)
}

// Get returns the error for field, or nil.
func (c *Collection) Get(field string) *Error {
	return c.items[field]
}

// Has reports whether field has an error.
func (c *Collection) Has(field string) bool {
	_, ok := c.items[field]
	return ok
}

// Len returns the number of errors.
func (c *Collection) Len() int {
	return len(c.order)
}

// All returns the errors in insertion order.
func (c *Collection) All() []*Error {
	out := make([]*Error, 0, len(c.order))
	for _, f := range c.order {
		out = append(out, c.items[f])
	}
	return out
}

// First returns the earliest error, or nil.
func (c *Collection) First() *Error {
	if len(c.order) == 0 {
		return nil
	}
	return c.items[c.order[0]]
}

// ByKind returns the errors of one kind in insertion order.
func (c *Collection) ByKind(k Kind) []*Error {
	var out []*Error
	for _, f := range c.order {
		if e := c.items[f]; e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Map flattens the collection into field -> formatted message.
func (c *Collection) Map() map[string]string {
	m := make(map[string]string, len(c.order))
	for _, f := range c.order {
		m[f] = Format(c.items[f])
	}
	return m
}

// Summary renders the collection with Summary.
func (c *Collection) Summary() string {
	return Summary(c.All())
}
