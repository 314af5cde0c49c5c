package fixedbind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// employee is the target shape used across the tests.
type employee struct {
	Name       string
	FamilySize int
	Birthday   time.Time
}

func employeeLayout() *Layout {
	return NewLayout("EMP",
		Field("NameField", 20, Trim),
		Field("FamilySizeField", 2, Integer),
		Field("BirthdayField", 10, Date(ISODate)),
	)
}

func employeeShape() *Shape[employee] {
	return NewShape[employee]().
		Bind("Name", "EMP", "NameField").
		Bind("FamilySize", "EMP", "FamilySizeField").
		Bind("Birthday", "EMP", "BirthdayField")
}

func TestBind(t *testing.T) {
	layout := employeeLayout()
	plan, err := Bind(layout, employeeShape())
	require.NoError(t, err)
	assert.Equal(t, 32, plan.Width())
	assert.Equal(t, layout.Width(), plan.Width())
	assert.Equal(t, "EMP", layout.Record())
	assert.Equal(t, "EMP", plan.Record())
	assert.Len(t, plan.entries, 3)
}

func TestBindSkipSlotsAdvanceOffsets(t *testing.T) {
	layout := NewLayout("EMP",
		Skip(5),
		Field("NameField", 20, Trim),
		Skip(3),
		Field("FamilySizeField", 2, Integer),
		Field("BirthdayField", 10, Date(ISODate)),
	)
	plan, err := Bind(layout, employeeShape())
	require.NoError(t, err)
	assert.Equal(t, 40, plan.Width())

	rec, err := plan.Decode("XXXXXEddie Stanley       YYY091983-11-07")
	require.NoError(t, err)
	assert.Equal(t, "Eddie Stanley", rec.Name)
	assert.Equal(t, 9, rec.FamilySize)
}

func TestBindUnboundLayoutFieldIsPermitted(t *testing.T) {
	layout := NewLayout("EMP",
		Field("NameField", 20, Trim),
		Field("IgnoredField", 4, Trim),
		Field("FamilySizeField", 2, Integer),
		Field("BirthdayField", 10, Date(ISODate)),
	)
	plan, err := Bind(layout, employeeShape())
	require.NoError(t, err)
	assert.Len(t, plan.entries, 3)

	rec, err := plan.Decode("Eddie Stanley       abcd091983-11-07")
	require.NoError(t, err)
	assert.Equal(t, 9, rec.FamilySize)
}

func TestBindInvalidWidth(t *testing.T) {
	for _, tt := range []struct {
		name   string
		layout *Layout
		index  int
		slot   string
		width  int
	}{
		{"zero-width field", NewLayout("EMP", Field("NameField", 0, Trim)), 0, "NameField", 0},
		{"negative-width field", NewLayout("EMP", Field("NameField", 5, Trim), Field("AgeField", -3, Integer)), 1, "AgeField", -3},
		{"zero-width skip", NewLayout("EMP", Skip(0), Field("NameField", 5, Trim)), 0, "skip", 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(tt.layout, NewShape[employee]())

			var inv *InvalidWidthError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, "EMP", inv.Record)
			assert.Equal(t, tt.index, inv.Index)
			assert.Equal(t, tt.slot, inv.Name)
			assert.Equal(t, tt.width, inv.Width)

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestBindDuplicateField(t *testing.T) {
	layout := NewLayout("EMP",
		Field("Field1", 10, Trim),
		Field("Field1", 20, Trim),
	)
	_, err := Bind(layout, NewShape[employee]())

	var dup *DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, dup.Index)
	assert.Equal(t, "Field1", dup.Name)
	assert.Equal(t, "EMP", dup.Record)
}

// Duplicate field names are rejected even when nothing binds to them.
func TestBindDuplicateFieldUnbound(t *testing.T) {
	layout := NewLayout("EMP",
		Field("NameField", 20, Trim),
		Field("NameField", 20, Trim),
		Field("FamilySizeField", 2, Integer),
		Field("BirthdayField", 10, Date(ISODate)),
	)
	shape := NewShape[employee]().
		Bind("FamilySize", "EMP", "FamilySizeField").
		Bind("Birthday", "EMP", "BirthdayField")
	_, err := Bind(layout, shape)

	var dup *DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, dup.Index)
	assert.Equal(t, "NameField", dup.Name)
}

func TestBindUnmappedFields(t *testing.T) {
	layout := NewLayout("EMP", Field("NameField", 20, Trim))
	shape := NewShape[employee]().
		Bind("Name", "EMP", "NameField").
		Bind("Birthday", "EMP", "ZBirthdayField").
		Bind("FamilySize", "EMP", "AFamilySizeField")
	_, err := Bind(layout, shape)

	var unmapped *UnmappedFieldsError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "employee", unmapped.Shape)
	assert.Equal(t, "EMP", unmapped.Record)
	assert.Equal(t, []string{"AFamilySizeField", "ZBirthdayField"}, unmapped.Fields)
}

func TestBindDuplicateBinding(t *testing.T) {
	shape := NewShape[employee]().
		Bind("Name", "EMP", "NameField").
		Bind("Name", "EMP", "OtherField")
	_, err := Bind(employeeLayout(), shape)

	var dup *DuplicateBindingError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Name", dup.Property)
	assert.Equal(t, "EMP", dup.Record)
}

func TestBindAmbiguousField(t *testing.T) {
	shape := NewShape[employee]().
		Bind("Name", "EMP", "NameField").
		Bind("FamilySize", "EMP", "NameField")
	_, err := Bind(employeeLayout(), shape)

	var amb *AmbiguousFieldError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, "employee", amb.Shape)
	assert.Equal(t, "NameField", amb.Field)
	assert.Equal(t, []string{"Name", "FamilySize"}, amb.Properties)
}

func TestBindMissingSetter(t *testing.T) {
	type person struct {
		Name string
		age  int
	}
	layout := NewLayout("P",
		Field("NameField", 10, Trim),
		Field("AgeField", 3, Integer),
	)
	shape := NewShape[person]().
		Bind("Name", "P", "NameField").
		Bind("age", "P", "AgeField")
	_, err := Bind(layout, shape)

	var missing *MissingSetterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "age", missing.Property)
	assert.Equal(t, "AgeField", missing.Field)
}

func TestBindUnknownProperty(t *testing.T) {
	shape := NewShape[employee]().Bind("Nickname", "EMP", "NameField")
	_, err := Bind(employeeLayout(), shape)

	var unknown *UnknownPropertyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Nickname", unknown.Property)
	assert.Equal(t, "employee", unknown.Shape)
}

func TestBindErrorsAreValidationErrors(t *testing.T) {
	layout := NewLayout("EMP",
		Field("Field1", 10, Trim),
		Field("Field1", 20, Trim),
	)
	_, err := Bind(layout, NewShape[employee]())

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}

// One shape can serve several record types: bindings are scoped to a
// record name, so a second record's bindings never collide with the first.
func TestBindShapeReuseAcrossRecords(t *testing.T) {
	shape := NewShape[employee]().
		Bind("Name", "EMP", "NameField").
		Bind("FamilySize", "EMP", "FamilySizeField").
		Bind("Birthday", "EMP", "BirthdayField").
		Bind("Name", "EMP2", "FullName").
		Bind("FamilySize", "EMP2", "Dependents").
		Bind("Birthday", "EMP2", "DOB")

	_, err := Bind(employeeLayout(), shape)
	require.NoError(t, err)

	layout2 := NewLayout("EMP2",
		Field("FullName", 20, Trim),
		Field("Dependents", 2, Integer),
		Field("DOB", 10, Date(ISODate)),
	)
	plan2, err := Bind(layout2, shape)
	require.NoError(t, err)

	rec, err := plan2.Decode("Eddie Stanley       091983-11-07")
	require.NoError(t, err)
	assert.Equal(t, "Eddie Stanley", rec.Name)
}

// Derivation is cached per record name; a second Bind against the same
// pairing reuses it and still produces a working plan.
func TestBindReusesDerivedAttributes(t *testing.T) {
	shape := employeeShape()
	layout := employeeLayout()

	plan1, err := Bind(layout, shape)
	require.NoError(t, err)
	plan2, err := Bind(layout, shape)
	require.NoError(t, err)

	_, ok := shape.derived.Load("EMP")
	assert.True(t, ok)

	for _, plan := range []*Plan[employee]{plan1, plan2} {
		rec, err := plan.Decode("Eddie Stanley       091983-11-07")
		require.NoError(t, err)
		assert.Equal(t, 9, rec.FamilySize)
	}
}
