package fixedbind

import (
	"reflect"
	"sync"
)

// A Shape describes the target struct type T and the bindings from layout
// fields to its properties. Bindings are registered explicitly rather than
// discovered from struct tags, so one shape can serve several record types:
// each property may carry one binding per record name.
//
// Registration happens before the first Bind; a Shape must not be modified
// once plans have been built from it.
type Shape[T any] struct {
	name     string
	bindings []binding

	// derived caches the validated field lookup per record name, so Bind
	// does not re-derive attributes for every plan built from this shape.
	derived sync.Map // map[string]map[string]*attribute
}

type binding struct {
	property string
	record   string
	field    string
}

// NewShape returns an empty shape for the struct type T.
func NewShape[T any]() *Shape[T] {
	t := reflect.TypeFor[T]()
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return &Shape[T]{name: name}
}

// Bind declares that the named layout field of the given record type
// populates the named property of T. It returns the shape for chaining.
func (s *Shape[T]) Bind(property, record, field string) *Shape[T] {
	s.bindings = append(s.bindings, binding{property: property, record: record, field: field})
	return s
}

// Name returns the shape's type name, used in error messages.
func (s *Shape[T]) Name() string {
	return s.name
}

// attribute is the derived view of one bound property: its struct field
// index, declared type, and whether the plan can assign into it.
type attribute struct {
	property string
	index    []int
	typ      reflect.Type
	settable bool
}

// attributes derives the field-name lookup for one record name, validating
// the bindings as it goes. Successful derivations are cached; failed ones
// are cheap enough to recompute.
func (s *Shape[T]) attributes(record string) (map[string]*attribute, error) {
	if v, ok := s.derived.Load(record); ok {
		return v.(map[string]*attribute), nil
	}

	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, &InvalidShapeError{Type: t.String()}
	}

	bound := make(map[string]bool)
	byField := make(map[string]*attribute)
	for _, b := range s.bindings {
		if b.record != record {
			continue
		}
		if bound[b.property] {
			return nil, &DuplicateBindingError{Shape: s.name, Property: b.property, Record: record}
		}
		bound[b.property] = true
		if prev, ok := byField[b.field]; ok {
			return nil, &AmbiguousFieldError{Shape: s.name, Field: b.field, Properties: []string{prev.property, b.property}}
		}
		sf, ok := t.FieldByName(b.property)
		if !ok {
			return nil, &UnknownPropertyError{Shape: s.name, Property: b.property}
		}
		byField[b.field] = &attribute{
			property: b.property,
			index:    sf.Index,
			typ:      sf.Type,
			settable: sf.IsExported(),
		}
	}

	v, _ := s.derived.LoadOrStore(record, byField)
	return v.(map[string]*attribute), nil
}

// An InvalidShapeError reports a shape whose type parameter is not a
// struct type.
type InvalidShapeError struct {
	Type string
}

func (e *InvalidShapeError) Error() string {
	return "fixedbind: shape type " + e.Type + " is not a struct"
}

func (e *InvalidShapeError) validationError() {}

// A DuplicateBindingError reports a property that carries more than one
// binding for the same record name.
type DuplicateBindingError struct {
	Shape    string
	Property string
	Record   string
}

func (e *DuplicateBindingError) Error() string {
	return "fixedbind: property " + e.Shape + "." + e.Property + " carries multiple bindings for record " + e.Record
}

func (e *DuplicateBindingError) validationError() {}

// An AmbiguousFieldError reports two properties bound to the same field of
// one record type.
type AmbiguousFieldError struct {
	Shape      string
	Field      string
	Properties []string
}

func (e *AmbiguousFieldError) Error() string {
	return "fixedbind: properties " + e.Properties[0] + " and " + e.Properties[1] + " of " + e.Shape + " are both bound to field " + e.Field
}

func (e *AmbiguousFieldError) validationError() {}

// An UnknownPropertyError reports a binding whose property does not exist
// on the shape's struct type.
type UnknownPropertyError struct {
	Shape    string
	Property string
}

func (e *UnknownPropertyError) Error() string {
	return "fixedbind: shape " + e.Shape + " has no property " + e.Property
}

func (e *UnknownPropertyError) validationError() {}
