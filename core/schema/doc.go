// Package schema describes onboarding forms as data.
//
// A Schema is an ordered list of groups, each holding field descriptors.
// A descriptor names the record key, its storage type, an optional validator
// kind, whether it is mandatory, and any composite parts: address sub-fields,
// table columns, or a per-item rule for free-value lists. Conditional fields
// carry a Predicate evaluated against the whole record.
//
// Records are plain map[string]any values as decoded from JSON or YAML.
// Lookup resolves dotted and indexed paths such as "shareholders[1].name".
//
//	s, err := schema.New("contact",
//		schema.GroupDescriptor{
//			Name: "contact",
//			Fields: []schema.FieldDescriptor{
//				{Name: "contactEmail", Label: "Contact email", Type: schema.TypeText,
//					Kind: validator.KindEmail, Mandatory: schema.Always()},
//			},
//		},
//	)
//
// New and Check report duplicate names, unknown types and malformed
// composite fields as errors. They signal mistakes in the form definition,
// not invalid applicant data.
package schema
