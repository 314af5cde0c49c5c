package fixedbind

import (
	"iter"
	"reflect"

	"github.com/pkg/errors"
)

// A DecodeError reports the failure of exactly one line. The plan stays
// valid; records decoded from earlier lines are unaffected.
type DecodeError interface {
	error
	decodeError()
}

// Decode applies the plan to one line and returns a freshly constructed
// record.
//
// Each bound field's slice is cut at the compiled character offset. A line
// shorter than an entry requires is reported as a ConversionError with a
// line-too-short cause before the converter ever runs, so tolerant
// converters cannot silently accept truncated input. Trailing characters
// beyond the plan's width are ignored; use Dump to see them.
func (p *Plan[T]) Decode(line string) (T, error) {
	var rec T
	rv := reflect.ValueOf(&rec).Elem()
	runes := []rune(line)
	for i := range p.entries {
		e := &p.entries[i]
		raw := sliceField(runes, e.start, e.width)
		if e.start+e.width > len(runes) {
			var zero T
			return zero, &ConversionError{
				Shape:    p.shape,
				Field:    e.field,
				Raw:      raw,
				Property: e.property,
				TypeName: e.typeName,
				Cause:    errors.Errorf("line too short: need %d characters at offset %d, have %d", e.width, e.start, len(runes)),
			}
		}
		val, err := e.convert(raw)
		if err != nil {
			var zero T
			return zero, &ConversionError{
				Shape:    p.shape,
				Field:    e.field,
				Raw:      raw,
				Property: e.property,
				TypeName: e.typeName,
				Cause:    err,
			}
		}
		if err := e.assign(rv, val); err != nil {
			var zero T
			return zero, err
		}
	}
	return rec, nil
}

// Records decodes a sequence of lines into a lazy sequence of records, one
// line at a time with no buffering. The first failing line is yielded with
// its error and the sequence ends there; records yielded before it remain
// valid. Breaking out of the iteration early is a safe no-op; calling
// Records again walks the lines sequence from its start.
func (p *Plan[T]) Records(lines iter.Seq[string]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for line := range lines {
			rec, err := p.Decode(line)
			if err != nil {
				yield(rec, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// sliceField cuts the width-character slice starting at offset, clamped to
// the characters the line actually has.
func sliceField(runes []rune, start, width int) string {
	if start >= len(runes) {
		return ""
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

// A ConversionError reports a raw field value that could not become the
// bound property's type.
type ConversionError struct {
	Shape    string
	Field    string
	Raw      string
	Property string
	TypeName string
	Cause    error
}

func (e *ConversionError) Error() string {
	s := "fixedbind: cannot convert \"" + e.Raw + "\" from field " + e.Field +
		" into " + e.Shape + "." + e.Property + " of type " + e.TypeName
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

func (e *ConversionError) decodeError() {}

// An AssignmentError reports a converted value whose runtime type is
// incompatible with the bound property's declared type.
type AssignmentError struct {
	Shape     string
	Field     string
	ValueType string
	Property  string
	TypeName  string
}

func (e *AssignmentError) Error() string {
	return "fixedbind: cannot assign " + e.ValueType + " value from field " + e.Field +
		" to " + e.Shape + "." + e.Property + " of type " + e.TypeName
}

func (e *AssignmentError) decodeError() {}
