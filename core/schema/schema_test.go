package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/validator"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid schema", func(t *testing.T) {
		t.Parallel()
		s, err := schema.New("test", schema.GroupDescriptor{
			Name: "basic",
			Fields: []schema.FieldDescriptor{
				{Name: "contactEmail", Type: schema.TypeText, Kind: validator.KindEmail, Mandatory: schema.Always()},
				{Name: "businessAddress", Type: schema.TypeAddress, AddressFields: []schema.FieldDescriptor{
					{Name: "city", Type: schema.TypeText, Mandatory: schema.Always()},
				}},
			},
		})
		require.NoError(t, err)
		assert.Len(t, s.Fields(), 2)

		f, ok := s.Field("contactEmail")
		assert.True(t, ok)
		assert.Equal(t, "contactEmail", f.DisplayLabel())
	})

	t.Run("duplicate names across groups", func(t *testing.T) {
		t.Parallel()
		_, err := schema.New("test",
			schema.GroupDescriptor{Name: "a", Fields: []schema.FieldDescriptor{{Name: "x", Type: schema.TypeText}}},
			schema.GroupDescriptor{Name: "b", Fields: []schema.FieldDescriptor{{Name: "x", Type: schema.TypeText}}},
		)
		assert.ErrorIs(t, err, schema.ErrDuplicateField)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		_, err := schema.New("test", schema.GroupDescriptor{
			Name:   "a",
			Fields: []schema.FieldDescriptor{{Name: "x", Type: "Rich Text"}},
		})
		assert.ErrorIs(t, err, schema.ErrInvalidFieldType)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := schema.New("test", schema.GroupDescriptor{
			Name:   "a",
			Fields: []schema.FieldDescriptor{{Name: "x", Type: schema.TypeText, Kind: "telepathy"}},
		})
		assert.ErrorIs(t, err, schema.ErrUnknownKind)
	})

	t.Run("table without columns", func(t *testing.T) {
		t.Parallel()
		_, err := schema.New("test", schema.GroupDescriptor{
			Name:   "a",
			Fields: []schema.FieldDescriptor{{Name: "shareholders", Type: schema.TypeTable}},
		})
		assert.ErrorIs(t, err, schema.ErrMalformedField)
	})

	t.Run("total over unknown column", func(t *testing.T) {
		t.Parallel()
		_, err := schema.New("test", schema.GroupDescriptor{
			Name: "a",
			Fields: []schema.FieldDescriptor{{
				Name:        "shareholders",
				Type:        schema.TypeTable,
				Columns:     []schema.FieldDescriptor{{Name: "name", Type: schema.TypeText}},
				Constraints: schema.Constraints{TotalField: "percentageOwnership"},
			}},
		})
		assert.ErrorIs(t, err, schema.ErrMalformedField)
	})

	t.Run("same column name in two tables", func(t *testing.T) {
		t.Parallel()
		cols := []schema.FieldDescriptor{{Name: "name", Type: schema.TypeText}}
		_, err := schema.New("test", schema.GroupDescriptor{
			Name: "a",
			Fields: []schema.FieldDescriptor{
				{Name: "shareholders", Type: schema.TypeTable, Columns: cols},
				{Name: "beneficialOwners", Type: schema.TypeTable, Columns: cols},
			},
		})
		assert.NoError(t, err)
	})
}

func TestFieldTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, schema.TypePercentage.Valid())
	assert.True(t, schema.TypeBoolean.Valid())
	assert.False(t, schema.FieldType("Text ").Valid())
}

func TestMandatory(t *testing.T) {
	t.Parallel()

	assert.False(t, schema.Never().IsMandatory())
	assert.True(t, schema.Always().IsMandatory())
	assert.True(t, schema.Always().AppliesTo(schema.StageStartup))

	m := schema.InStages(schema.StageGrowth, schema.StageMature)
	assert.True(t, m.IsMandatory())
	assert.True(t, m.AppliesTo(schema.StageGrowth))
	assert.False(t, m.AppliesTo(schema.StageStartup))
	assert.True(t, m.AppliesTo(""))
	assert.Equal(t, []string{"growth", "mature"}, m.Stages())

	assert.False(t, schema.InStages().IsMandatory())
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	r := schema.Record{"sameAsBusinessAddress": false, "entityType": "OTHER"}

	assert.True(t, schema.FieldEquals("sameAsBusinessAddress", false)(r))
	assert.False(t, schema.FieldEquals("sameAsBusinessAddress", true)(r))
	assert.False(t, schema.FieldEquals("hasParentCompany", true)(r))
	assert.True(t, schema.FieldNotEquals("entityType", "DIFC_INCORPORATION")(r))
	assert.False(t, schema.FieldNotEquals("missing", "x")(r))
}
