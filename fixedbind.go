// Package fixedbind decodes lines of fixed-width text into typed records.
//
// A Layout describes the field slots of one record type: each slot is
// either a named field with a character width and a Converter, or an
// anonymous skip region. A Shape describes the target struct and declares,
// per record type, which layout field populates which property. Bind
// cross-validates the two and compiles a Plan that can be reused for every
// line of input.
package fixedbind

// A Converter turns the raw text of one field into a typed value. The
// value it returns must be assignable to the bound property; a mismatch is
// reported as an AssignmentError at decode time rather than a conversion
// failure.
//
// Converters receive the field's slice of the line verbatim, padding
// included. They are treated as opaque: fixedbind only observes success or
// failure and keeps the failure as the cause of a ConversionError.
type Converter func(raw string) (any, error)
