package schema

import "slices"

// FieldType is the storage type of a field as declared in the form catalogue.
type FieldType string

const (
	TypeText          FieldType = "Text"
	TypeMultilineText FieldType = "Multiline Text"
	TypeSelect        FieldType = "select"
	TypeMultiselect   FieldType = "multiselect"
	TypeWholeNumber   FieldType = "Whole Number"
	TypeDecimal       FieldType = "Decimal"
	TypePercentage    FieldType = "Decimal (0–100)"
	TypeCurrency      FieldType = "Currency"
	TypeURL           FieldType = "URL"
	TypeDate          FieldType = "Date"
	TypeDateOnly      FieldType = "Date Only"
	TypeDateTime      FieldType = "DateTime"
	TypeFileUpload    FieldType = "File Upload"
	TypeTable         FieldType = "Table"
	TypeLookup        FieldType = "Lookup"
	TypeAddress       FieldType = "Address"
	TypeBoolean       FieldType = "Two Options"
)

var fieldTypes = []FieldType{
	TypeText, TypeMultilineText, TypeSelect, TypeMultiselect, TypeWholeNumber,
	TypeDecimal, TypePercentage, TypeCurrency, TypeURL, TypeDate, TypeDateOnly,
	TypeDateTime, TypeFileUpload, TypeTable, TypeLookup, TypeAddress, TypeBoolean,
}

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	return slices.Contains(fieldTypes, t)
}

// Company lifecycle stages used by stage-conditional fields.
const (
	StageStartup    = "startup"
	StageGrowth     = "growth"
	StageMature     = "mature"
	StageEnterprise = "enterprise"
)

// Mandatory says whether a field must be filled in. A field is never
// mandatory, always mandatory, or mandatory only for certain company stages.
type Mandatory struct {
	always bool
	stages []string
}

// Never marks a field as optional.
func Never() Mandatory { return Mandatory{} }

// Always marks a field as required for every applicant.
func Always() Mandatory { return Mandatory{always: true} }

// InStages marks a field as required only for the listed company stages.
func InStages(stages ...string) Mandatory {
	return Mandatory{stages: slices.Clone(stages)}
}

// IsMandatory reports whether the field is required for at least one stage.
func (m Mandatory) IsMandatory() bool {
	return m.always || len(m.stages) > 0
}

// AppliesTo reports whether the field is required for the given stage.
// With no stage, any stage-conditional requirement counts.
func (m Mandatory) AppliesTo(stage string) bool {
	if m.always {
		return true
	}
	if stage == "" {
		return len(m.stages) > 0
	}
	return slices.Contains(m.stages, stage)
}

// Stages returns the stages a conditional field is required in.
func (m Mandatory) Stages() []string {
	return slices.Clone(m.stages)
}
