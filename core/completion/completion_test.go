package completion_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/completion"
	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("test",
		schema.GroupDescriptor{
			Name:  "basic",
			Title: "Basic",
			Fields: []schema.FieldDescriptor{
				{Name: "firmName", Type: schema.TypeText, Mandatory: schema.Always()},
				{Name: "tradingName", Type: schema.TypeText, Mandatory: schema.Never()},
				{Name: "employees", Type: schema.TypeWholeNumber, Mandatory: schema.Always()},
			},
		},
		schema.GroupDescriptor{
			Name:  "growth",
			Title: "Growth",
			Fields: []schema.FieldDescriptor{
				{Name: "auditedAccounts", Type: schema.TypeURL, Mandatory: schema.InStages(schema.StageMature)},
				{Name: "investors", Type: schema.TypeMultiselect, Mandatory: schema.Always(),
					Options: []schema.Option{{Value: "vc"}, {Value: "angel"}}},
			},
		},
	)
	require.NoError(t, err)
	return s
}

func TestScore(t *testing.T) {
	t.Parallel()

	s := testSchema(t)

	tests := []struct {
		name string
		data schema.Record
		want int
	}{
		{"empty", schema.Record{}, 0},
		{"nil data", nil, 0},
		{"one of four", schema.Record{"firmName": "Acme"}, 25},
		{"blank string is missing", schema.Record{"firmName": "   "}, 0},
		{"zero counts", schema.Record{"employees": 0}, 25},
		{"empty list is missing", schema.Record{"investors": []any{}}, 0},
		{"optional fields ignored", schema.Record{"tradingName": "Acme"}, 0},
		{"three of four", schema.Record{"firmName": "Acme", "employees": 3, "investors": []any{"vc"}}, 75},
		{"complete", schema.Record{
			"firmName": "Acme", "employees": 3, "investors": []any{"vc"},
			"auditedAccounts": "https://example.com/a.pdf",
		}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, completion.Score(s, tt.data))
		})
	}
}

func TestScore_Rounding(t *testing.T) {
	t.Parallel()

	fields := make([]schema.FieldDescriptor, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		fields = append(fields, schema.FieldDescriptor{Name: name, Type: schema.TypeText, Mandatory: schema.Always()})
	}
	eight, err := schema.New("eight", schema.GroupDescriptor{Name: "g", Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, 13, completion.Score(eight, schema.Record{"a": "x"}))

	three, err := schema.New("three", schema.GroupDescriptor{Name: "g", Fields: fields[:3]})
	require.NoError(t, err)
	assert.Equal(t, 33, completion.Score(three, schema.Record{"a": "x"}))
	assert.Equal(t, 67, completion.Score(three, schema.Record{"a": "x", "b": "y"}))
}

func TestScore_Vacuous(t *testing.T) {
	t.Parallel()

	s, err := schema.New("optional", schema.GroupDescriptor{
		Name:   "g",
		Fields: []schema.FieldDescriptor{{Name: "notes", Type: schema.TypeText}},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, completion.Score(s, schema.Record{}))
	assert.Equal(t, 100, completion.Score(&schema.Schema{}, nil))
}

func TestScore_Monotonic(t *testing.T) {
	t.Parallel()

	s := pathway.MustSelect(pathway.FinancialServices)
	full, err := pathway.Example(pathway.FinancialServices)
	require.NoError(t, err)

	data := schema.Record{}
	prev := completion.Score(s, data)
	for _, f := range s.Fields() {
		v, ok := schema.Lookup(full, f.Name)
		if !ok {
			continue
		}
		set(data, f.Name, v)
		got := completion.Score(s, data)
		assert.GreaterOrEqual(t, got, prev, f.Name)
		prev = got
	}
}

func set(r schema.Record, path string, v any) {
	parent, key, nested := strings.Cut(path, ".")
	if !nested {
		r[path] = v
		return
	}
	m, ok := r[parent].(map[string]any)
	if !ok {
		m = map[string]any{}
		r[parent] = m
	}
	m[key] = v
}

func TestScoreAt(t *testing.T) {
	t.Parallel()

	s := testSchema(t)
	data := schema.Record{"firmName": "Acme", "employees": 3, "investors": []any{"vc"}}

	assert.Equal(t, 100, completion.ScoreAt(s, data, schema.StageStartup))
	assert.Equal(t, 75, completion.ScoreAt(s, data, schema.StageMature))
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	s := testSchema(t)
	r := completion.Evaluate(s, schema.Record{"firmName": "Acme", "employees": 3})

	assert.Equal(t, 50, r.Score)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 2, r.Completed)
	assert.Equal(t, []string{"auditedAccounts", "investors"}, r.Missing)

	require.Len(t, r.Sections, 2)
	assert.Equal(t, completion.SectionReport{Name: "basic", Title: "Basic", Score: 100, Total: 2, Completed: 2}, r.Sections[0])
	assert.Equal(t, 0, r.Sections[1].Score)

	g, ok := s.Group("growth")
	require.True(t, ok)
	assert.Equal(t, 0, completion.Section(g, schema.Record{}))
}

func TestEvaluate_IgnoresFollowUpFields(t *testing.T) {
	t.Parallel()

	for _, a := range pathway.ActivityTypes() {
		s := pathway.MustSelect(a)
		data, err := pathway.Example(a)
		require.NoError(t, err)
		assert.Equal(t, 100, completion.Score(s, data), a)
	}
}

func TestOverall(t *testing.T) {
	t.Parallel()

	s := testSchema(t)
	assert.Equal(t, 40, completion.Overall(s, schema.Record{"firmName": "Acme", "tradingName": "Acme"}))
	assert.Equal(t, 0, completion.Overall(&schema.Schema{}, schema.Record{}))
}
