package fixedbind

// A Slot is one region of a fixed-width line: either a named field with a
// Converter, or an anonymous skip region. Widths are measured in
// characters, not bytes.
type Slot struct {
	skip    bool
	name    string
	width   int
	convert Converter
}

// Field returns a named slot of the given character width. The converter
// is applied to the slot's slice of each line. Widths must be positive;
// Bind rejects a layout whose slots violate that.
func Field(name string, width int, convert Converter) Slot {
	return Slot{name: name, width: width, convert: convert}
}

// Skip returns an anonymous slot that consumes width characters without
// producing a value.
func Skip(width int) Slot {
	return Slot{skip: true, width: width}
}

// A Layout is the ordered slot description for one record type. It is
// immutable after construction; all validation happens in Bind so that a
// layout with problems can still be inspected with Dump.
type Layout struct {
	record string
	slots  []Slot
}

// NewLayout returns a layout for the named record type with the given
// slots, in order.
func NewLayout(record string, slots ...Slot) *Layout {
	return &Layout{record: record, slots: slots}
}

// Record returns the record type name this layout describes.
func (l *Layout) Record() string {
	return l.record
}

// Width returns the total character width of all slots.
func (l *Layout) Width() int {
	var w int
	for _, s := range l.slots {
		w += s.width
	}
	return w
}
