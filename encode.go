package fixedbind

import (
	"encoding"
	"reflect"
	"strconv"
)

// ValueWriter is responsible for writing a formatted value into its slot
// of the output line. Slices are character-based to match the decode
// side: the destination always has the slot's width in characters and
// arrives filled with spaces; values longer than the slot are truncated.
type ValueWriter func(value, destination []rune) error

// PadRight writes the value flush left, padding on the right. Overflow is
// truncated on the right.
func PadRight(value, destination []rune) error {
	for i := 0; i < len(value) && i < len(destination); i++ {
		destination[i] = value[i]
	}
	return nil
}

// PadLeft writes the value flush right, padding on the left. Overflow is
// truncated on the left.
func PadLeft(value, destination []rune) error {
	for i := 0; i < len(value) && i < len(destination); i++ {
		destination[len(destination)-i-1] = value[len(value)-i-1]
	}
	return nil
}

// Format renders a record back into a fixed-width line using the plan's
// compiled entries. Skip slots and unbound fields stay space-filled.
// String-like values pad right; numeric values pad left.
//
// Format is the inverse of Decode only to the extent the converters and
// the default rendering agree; it exists for producing test fixtures and
// round-trip checks, not as a general encoder.
func (p *Plan[T]) Format(rec T) (string, error) {
	rv := reflect.ValueOf(rec)
	data := make([]rune, p.width)
	for i := range data {
		data[i] = ' '
	}
	for i := range p.entries {
		e := &p.entries[i]
		value, err := e.encode(rv.FieldByIndex(e.index))
		if err != nil {
			return "", err
		}
		w := ValueWriter(PadRight)
		if e.numeric {
			w = PadLeft
		}
		dest := data[e.start : e.start+e.width : e.start+e.width]
		if err := w([]rune(string(value)), dest); err != nil {
			return "", err
		}
	}
	return string(data), nil
}

// valueEncoder renders one property value as text for Format. Compiled
// once per plan entry during Bind.
type valueEncoder func(v reflect.Value) ([]byte, error)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

func newValueEncoder(t reflect.Type) valueEncoder {
	if t.Implements(textMarshalerType) {
		return textMarshalerEncoder
	}

	switch t.Kind() {
	case reflect.Ptr:
		return ptrEncoder(t)
	case reflect.String:
		return stringEncoder
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intEncoder
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintEncoder
	case reflect.Float32:
		return floatEncoder(2, 32)
	case reflect.Float64:
		return floatEncoder(2, 64)
	}
	return unknownTypeEncoder(t)
}

func textMarshalerEncoder(v reflect.Value) ([]byte, error) {
	return v.Interface().(encoding.TextMarshaler).MarshalText()
}

func ptrEncoder(t reflect.Type) valueEncoder {
	elem := newValueEncoder(t.Elem())
	return func(v reflect.Value) ([]byte, error) {
		if v.IsNil() {
			return nil, nil
		}
		return elem(v.Elem())
	}
}

func stringEncoder(v reflect.Value) ([]byte, error) {
	return []byte(v.String()), nil
}

func intEncoder(v reflect.Value) ([]byte, error) {
	return strconv.AppendInt(nil, v.Int(), 10), nil
}

func uintEncoder(v reflect.Value) ([]byte, error) {
	return strconv.AppendUint(nil, v.Uint(), 10), nil
}

func floatEncoder(prec, bitSize int) valueEncoder {
	return func(v reflect.Value) ([]byte, error) {
		return strconv.AppendFloat(nil, v.Float(), 'f', prec, bitSize), nil
	}
}

func unknownTypeEncoder(t reflect.Type) valueEncoder {
	return func(reflect.Value) ([]byte, error) {
		return nil, &FormatTypeError{typeName: t.String()}
	}
}

// A FormatTypeError reports a bound property type Format cannot render.
type FormatTypeError struct {
	typeName string
}

func (e *FormatTypeError) Error() string {
	return "fixedbind: cannot format value of type " + e.typeName
}
