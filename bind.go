package fixedbind

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// A ValidationError reports a layout/shape mismatch found while building a
// plan. Validation fails fast: Bind returns the first violation it finds
// and never returns a partial plan.
type ValidationError interface {
	error
	validationError()
}

// assigner places a converted value onto one property of an in-progress
// record. It is compiled once during Bind and reused for every line.
type assigner func(rec reflect.Value, val any) error

// planEntry is the compiled form of one bound field: where its slice
// starts, how to convert it, and how to assign it. Entries are immutable
// and indexed positionally, never looked up by name at decode time.
type planEntry struct {
	start    int
	width    int
	convert  Converter
	assign   assigner
	encode   valueEncoder
	index    []int
	numeric  bool
	field    string
	property string
	typeName string
}

// A Plan is the compiled, reusable mapping from line offsets to
// conversion and assignment steps for one (layout, shape) pairing. It is
// immutable after Bind and safe to share across concurrent decodes.
type Plan[T any] struct {
	record  string
	shape   string
	width   int
	entries []planEntry
}

// Width returns the total character width of the layout the plan was
// built from, including skip slots and unbound fields.
func (p *Plan[T]) Width() int {
	return p.width
}

// Record returns the record type name the plan was built for.
func (p *Plan[T]) Record() string {
	return p.record
}

// Bind cross-validates layout against shape for the layout's record name
// and compiles a Plan.
//
// Layout fields with no binding are permitted and simply consume their
// width. A bound property with no matching layout field is an error, and
// all such fields are reported together so the caller can fix the
// mismatch in one pass.
func Bind[T any](layout *Layout, shape *Shape[T]) (*Plan[T], error) {
	attrs, err := shape.attributes(layout.record)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	matched := make(map[string]bool)
	var entries []planEntry
	offset := 0
	for i, s := range layout.slots {
		if s.width <= 0 {
			name := s.name
			if s.skip {
				name = "skip"
			}
			return nil, &InvalidWidthError{Record: layout.record, Index: i, Name: name, Width: s.width}
		}
		if s.skip {
			offset += s.width
			continue
		}
		if seen[s.name] {
			return nil, &DuplicateFieldError{Record: layout.record, Index: i, Name: s.name}
		}
		seen[s.name] = true

		attr, ok := attrs[s.name]
		if !ok {
			offset += s.width
			continue
		}
		if !attr.settable {
			return nil, &MissingSetterError{Shape: shape.name, Property: attr.property, Field: s.name}
		}
		entries = append(entries, planEntry{
			start:    offset,
			width:    s.width,
			convert:  s.convert,
			assign:   newAssigner(shape.name, attr, s.name),
			encode:   newValueEncoder(attr.typ),
			index:    attr.index,
			numeric:  isNumeric(attr.typ),
			field:    s.name,
			property: attr.property,
			typeName: attr.typ.String(),
		})
		matched[s.name] = true
		offset += s.width
	}

	var unmapped []string
	for field := range attrs {
		if !matched[field] {
			unmapped = append(unmapped, field)
		}
	}
	if len(unmapped) > 0 {
		sort.Strings(unmapped)
		return nil, &UnmappedFieldsError{Shape: shape.name, Record: layout.record, Fields: unmapped}
	}

	return &Plan[T]{record: layout.record, shape: shape.name, width: offset, entries: entries}, nil
}

// newAssigner compiles the setter closure for one bound property. The
// struct field index is captured here so decode never resolves names.
func newAssigner(shape string, attr *attribute, field string) assigner {
	index := attr.index
	typ := attr.typ
	property := attr.property
	return func(rec reflect.Value, val any) error {
		f := rec.FieldByIndex(index)
		if val == nil {
			f.Set(reflect.Zero(typ))
			return nil
		}
		v := reflect.ValueOf(val)
		if !v.Type().AssignableTo(typ) {
			return &AssignmentError{
				Shape:     shape,
				Field:     field,
				ValueType: v.Type().String(),
				Property:  property,
				TypeName:  typ.String(),
			}
		}
		f.Set(v)
		return nil
	}
}

func isNumeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// An InvalidWidthError reports a slot whose width is zero or negative.
// Widths are required to be positive for every slot, skip slots included.
type InvalidWidthError struct {
	Record string
	Index  int
	Name   string
	Width  int
}

func (e *InvalidWidthError) Error() string {
	return "fixedbind: layout " + e.Record + " slot " + strconv.Itoa(e.Index) +
		" (" + e.Name + ") has invalid width " + strconv.Itoa(e.Width)
}

func (e *InvalidWidthError) validationError() {}

// A DuplicateFieldError reports a layout that declares the same field name
// twice. Duplicates are rejected even when the field is never bound.
type DuplicateFieldError struct {
	Record string
	Index  int
	Name   string
}

func (e *DuplicateFieldError) Error() string {
	return "fixedbind: layout " + e.Record + " declares duplicate field " + e.Name + " at slot " + strconv.Itoa(e.Index)
}

func (e *DuplicateFieldError) validationError() {}

// A MissingSetterError reports a binding to a property that cannot be
// assigned, typically an unexported struct field.
type MissingSetterError struct {
	Shape    string
	Property string
	Field    string
}

func (e *MissingSetterError) Error() string {
	return "fixedbind: property " + e.Shape + "." + e.Property + " bound to field " + e.Field + " is not settable"
}

func (e *MissingSetterError) validationError() {}

// An UnmappedFieldsError reports bound fields that no layout field
// matched. It carries the full set, sorted by field name.
type UnmappedFieldsError struct {
	Shape  string
	Record string
	Fields []string
}

func (e *UnmappedFieldsError) Error() string {
	return "fixedbind: layout " + e.Record + " has no field for bound fields " +
		strings.Join(e.Fields, ", ") + " of " + e.Shape
}

func (e *UnmappedFieldsError) validationError() {}
