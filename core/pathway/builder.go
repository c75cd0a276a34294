package pathway

import (
	"fmt"

	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/validator"
)

// MaxOwnershipRows caps the shareholder and beneficial owner tables.
const MaxOwnershipRows = 15

// Select returns the form schema for an activity.
func Select(a ActivityType) (*schema.Schema, error) {
	f, err := FeaturesOf(a)
	if err != nil {
		return nil, err
	}
	return Build(a, f)
}

// MustSelect is like Select but panics on an unknown activity.
func MustSelect(a ActivityType) *schema.Schema {
	s, err := Select(a)
	if err != nil {
		panic(err)
	}
	return s
}

// Build composes a schema from shared sections according to the features.
func Build(a ActivityType, f Features) (*schema.Schema, error) {
	p, err := a.Pathway()
	if err != nil {
		return nil, err
	}

	groups := []schema.GroupDescriptor{
		applicationGroup(a, p),
		contactGroup(),
		entityGroup(f),
		addressGroup(f),
		structureGroup(f),
	}
	if f.RequiresShareholderTable {
		groups = append(groups, shareholdingGroup())
	}
	if f.RequiresBeneficialOwnerTable {
		groups = append(groups, beneficialOwnershipGroup())
	}
	if f.RequiresFinancialInfo {
		groups = append(groups, financialGroup(f))
	}
	if f.Regulatory != RegulatoryNone {
		groups = append(groups, regulatoryGroup(f))
	}
	if f.RequiresComplianceOfficer || f.RequiresMLRO {
		groups = append(groups, complianceGroup(a, f))
	}
	if f.RequiresKeyPersonnel {
		groups = append(groups, personnelGroup())
	}

	docs := append(append([]string(nil), baseDocuments...), f.Documents...)
	groups = append(groups, documentsGroup(docs), declarationsGroup())

	s, err := schema.New(fmt.Sprintf("pathway-%s", p), groups...)
	if err != nil {
		return nil, err
	}
	s.Documents = docs
	return s, nil
}

func text(name, label string, kind string, minLen, maxLen int, m schema.Mandatory) schema.FieldDescriptor {
	return schema.FieldDescriptor{
		Name:        name,
		Label:       label,
		Type:        schema.TypeText,
		Kind:        kind,
		Mandatory:   m,
		Constraints: schema.Constraints{MinLength: minLen, MaxLength: maxLen},
	}
}

func options(values ...string) []schema.Option {
	out := make([]schema.Option, 0, len(values))
	for _, v := range values {
		out = append(out, schema.Option{Value: v, Label: v})
	}
	return out
}

func applicationGroup(a ActivityType, p Pathway) schema.GroupDescriptor {
	return schema.GroupDescriptor{
		Name:  "application",
		Title: "Application",
		Fields: []schema.FieldDescriptor{
			{
				Name: "activityType", Label: "Activity type", Type: schema.TypeSelect,
				Options:        options(string(a)),
				InvalidMessage: fmt.Sprintf("This schema is for %s applications only", a.Label()),
			},
			{
				Name: "pathway", Label: "Pathway", Type: schema.TypeSelect,
				Options:        options(string(p)),
				InvalidMessage: fmt.Sprintf("This schema is for pathway %s only", p),
			},
		},
	}
}

func contactGroup() schema.GroupDescriptor {
	return schema.GroupDescriptor{
		Name:  "contact",
		Title: "Contact details",
		Fields: []schema.FieldDescriptor{
			text("suggestedCompanyName", "Suggested company name", validator.KindFirmName, 0, 0, schema.Never()),
			text("contactName", "Contact name", validator.KindFullName, 2, 100, schema.Always()),
			text("contactEmail", "Contact email", validator.KindEmail, 0, 0, schema.Always()),
			text("contactPhone", "Contact phone", validator.KindPhone, 0, 0, schema.Always()),
		},
	}
}

func entityGroup(f Features) schema.GroupDescriptor {
	fields := []schema.FieldDescriptor{
		text("legalEntityName", "Legal entity name", "", 0, 0, schema.Always()),
		text("tradingName", "Trading name", "", 0, 200, schema.Never()),
		text("incorporationJurisdiction", "Incorporation jurisdiction", validator.KindText, 2, 100, schema.Always()),
		{
			Name: "incorporationDate", Label: "Incorporation date", Type: schema.TypeDateOnly,
			Mandatory:   schema.Always(),
			Constraints: schema.Constraints{Date: &validator.DateConstraints{NotFuture: true}},
		},
		text("registrationNumber", "Registration number", "", 3, 50, schema.Always()),
	}
	if f.IncludesTaxID {
		fields = append(fields,
			text("taxIdentificationNumber", "Tax identification number", validator.KindRegistrationNumber, 3, 50, schema.Never()))
	}
	return schema.GroupDescriptor{Name: "entity", Title: "Basic information", Fields: fields}
}

func addressFields() []schema.FieldDescriptor {
	return []schema.FieldDescriptor{
		text("line1", "Address line 1", validator.KindAddress, 2, 200, schema.Always()),
		text("line2", "Address line 2", validator.KindAddress, 0, 200, schema.Never()),
		text("city", "City", validator.KindCity, 2, 100, schema.Always()),
		text("state", "State", validator.KindState, 0, 100, schema.Never()),
		text("postalCode", "Postal code", validator.KindPostalCode, 2, 20, schema.Always()),
		text("country", "Country", validator.KindText, 2, 100, schema.Always()),
	}
}

func addressGroup(f Features) schema.GroupDescriptor {
	fields := []schema.FieldDescriptor{{
		Name: "businessAddress", Label: "Business address", Type: schema.TypeAddress,
		Mandatory: schema.Always(), AddressFields: addressFields(),
	}}
	if f.IncludesMailingAddress {
		fields = append(fields,
			schema.FieldDescriptor{
				Name: "sameAsBusinessAddress", Label: "Mailing address same as business address",
				Type: schema.TypeBoolean, Mandatory: schema.Always(),
			},
			schema.FieldDescriptor{
				Name: "mailingAddress", Label: "Mailing address", Type: schema.TypeAddress,
				Mandatory: schema.Always(), AddressFields: addressFields(),
				When: schema.FieldEquals("sameAsBusinessAddress", false),
			},
		)
	}
	return schema.GroupDescriptor{Name: "address", Title: "Address", Fields: fields}
}

func structureGroup(f Features) schema.GroupDescriptor {
	fields := []schema.FieldDescriptor{
		{
			Name: "entityType", Label: "Entity type", Type: schema.TypeSelect,
			Mandatory: schema.Always(),
			Options:   options("DIFC_INCORPORATION", "OTHER_JURISDICTION", "OTHER"),
		},
		{
			Name: "entityTypeOther", Label: "Entity type description", Type: schema.TypeText,
			Kind: validator.KindText, Mandatory: schema.Always(),
			Constraints: schema.Constraints{MinLength: 2, MaxLength: 100},
			When:        schema.FieldEquals("entityType", "OTHER"),
		},
	}
	if f.IncludesParentCompany {
		hasParent := schema.FieldEquals("hasParentCompany", true)
		fields = append(fields,
			schema.FieldDescriptor{
				Name: "hasParentCompany", Label: "Has parent company",
				Type: schema.TypeBoolean, Mandatory: schema.Always(),
			},
			schema.FieldDescriptor{
				Name: "parentCompanyName", Label: "Parent company name", Type: schema.TypeText,
				Kind: validator.KindFirmName, Mandatory: schema.Always(), When: hasParent,
			},
			schema.FieldDescriptor{
				Name: "parentCompanyJurisdiction", Label: "Parent company jurisdiction", Type: schema.TypeText,
				Kind: validator.KindText, Mandatory: schema.Always(), When: hasParent,
				Constraints: schema.Constraints{MinLength: 2, MaxLength: 100},
			},
		)
	}

	groupStructure := schema.Never()
	if f.GroupStructureRequired {
		groupStructure = schema.Always()
	}
	fields = append(fields, schema.FieldDescriptor{
		Name: "groupStructureDiagram", Label: "Group structure diagram",
		Type: schema.TypeFileUpload, Kind: validator.KindDocument, Mandatory: groupStructure,
	})

	return schema.GroupDescriptor{Name: "structure", Title: "Entity structure", Fields: fields}
}

func personColumns() []schema.FieldDescriptor {
	return []schema.FieldDescriptor{
		text("id", "Row ID", validator.KindFreeText, 0, 100, schema.Always()),
		text("name", "Name", validator.KindText, 2, 200, schema.Always()),
		text("nationality", "Nationality", validator.KindText, 2, 100, schema.Always()),
	}
}

func shareholdingGroup() schema.GroupDescriptor {
	cols := append(personColumns(),
		schema.FieldDescriptor{
			Name: "idType", Label: "ID type", Type: schema.TypeSelect, Mandatory: schema.Always(),
			Options: options("passport", "national_id", "other"),
		},
		text("idNumber", "ID number", validator.KindText, 3, 50, schema.Always()),
		schema.FieldDescriptor{
			Name: "percentageOwnership", Label: "Ownership percentage", Type: schema.TypePercentage,
			Mandatory: schema.Always(), Constraints: schema.Constraints{Min: validator.Float(0.01)},
		},
		schema.FieldDescriptor{
			Name: "dateAcquired", Label: "Date acquired", Type: schema.TypeDateOnly,
			Mandatory:   schema.Always(),
			Constraints: schema.Constraints{Date: &validator.DateConstraints{NotFuture: true}},
		},
	)
	return schema.GroupDescriptor{
		Name:  "shareholding",
		Title: "Shareholding",
		Fields: []schema.FieldDescriptor{{
			Name: "shareholders", Label: "Shareholders", Type: schema.TypeTable,
			Mandatory:       schema.Always(),
			Columns:         cols,
			RequiredMessage: "At least one shareholder is required",
			Constraints: schema.Constraints{
				MinItems:     1,
				MaxItems:     MaxOwnershipRows,
				TotalField:   "percentageOwnership",
				TotalMessage: "Total shareholding must equal 100%. Please adjust ownership percentages.",
			},
		}},
	}
}

func beneficialOwnershipGroup() schema.GroupDescriptor {
	cols := append(personColumns(),
		schema.FieldDescriptor{
			Name: "dateOfBirth", Label: "Date of birth", Type: schema.TypeDateOnly,
			Mandatory:   schema.Always(),
			Constraints: schema.Constraints{Date: &validator.DateConstraints{NotFuture: true, MinAge: 18}},
		},
		schema.FieldDescriptor{
			Name: "percentageControl", Label: "Control percentage", Type: schema.TypePercentage,
			Mandatory: schema.Always(), Constraints: schema.Constraints{Min: validator.Float(0.01)},
		},
		schema.FieldDescriptor{
			Name: "controlType", Label: "Control type", Type: schema.TypeSelect, Mandatory: schema.Always(),
			Options: options("direct", "indirect", "voting_rights"),
		},
	)
	return schema.GroupDescriptor{
		Name:  "beneficialOwnership",
		Title: "Beneficial ownership",
		Fields: []schema.FieldDescriptor{{
			Name: "beneficialOwners", Label: "Beneficial owners", Type: schema.TypeTable,
			Mandatory:       schema.Always(),
			Columns:         cols,
			RequiredMessage: "At least one beneficial owner is required",
			Constraints: schema.Constraints{
				MinItems:     1,
				MaxItems:     MaxOwnershipRows,
				TotalField:   "percentageControl",
				TotalMessage: "Total beneficial ownership must equal 100%. Please adjust control percentages.",
			},
		}},
	}
}

func financialGroup(f Features) schema.GroupDescriptor {
	revenue := func(year int) schema.FieldDescriptor {
		return schema.FieldDescriptor{
			Name:  fmt.Sprintf("projectedRevenueYear%d", year),
			Label: fmt.Sprintf("Projected revenue year %d", year),
			Type:  schema.TypeCurrency, Mandatory: schema.Never(),
			Constraints: schema.Constraints{Min: validator.Float(0)},
		}
	}
	return schema.GroupDescriptor{
		Name:  "financial",
		Title: "Financial information",
		Fields: []schema.FieldDescriptor{
			{
				Name: "proposedCapitalUSD", Label: "Proposed capital", Type: schema.TypeCurrency,
				Mandatory: schema.Always(), Constraints: schema.Constraints{Min: validator.Float(f.MinimumCapital)},
			},
			{
				Name: "fundingSources", Label: "Funding sources", Type: schema.TypeTable,
				Mandatory:       schema.Always(),
				RequiredMessage: "At least one funding source is required",
				Constraints:     schema.Constraints{MinItems: 1},
				Columns: []schema.FieldDescriptor{
					text("id", "Row ID", validator.KindFreeText, 0, 100, schema.Always()),
					{
						Name: "sourceType", Label: "Source type", Type: schema.TypeSelect, Mandatory: schema.Always(),
						Options: options("equity", "debt", "retained_earnings", "other"),
					},
					{
						Name: "description", Label: "Description", Type: schema.TypeMultilineText,
						Kind: validator.KindFreeText, Mandatory: schema.Always(),
						Constraints: schema.Constraints{MinLength: 10, MaxLength: 500},
					},
					{
						Name: "amountUSD", Label: "Amount", Type: schema.TypeCurrency, Mandatory: schema.Always(),
						Constraints: schema.Constraints{Min: validator.Float(1)},
					},
					{
						Name: "sourceDocument", Label: "Source document", Type: schema.TypeURL,
						Kind: validator.KindDocument, Mandatory: schema.Never(),
					},
				},
			},
			revenue(1),
			revenue(2),
			revenue(3),
			{
				Name: "financialProjections", Label: "Financial projections", Type: schema.TypeFileUpload,
				Kind: validator.KindDocument, Mandatory: schema.Never(),
			},
		},
	}
}

func regulatoryGroup(f Features) schema.GroupDescriptor {
	regulated := schema.FieldEquals("currentlyRegulated", true)
	required := schema.Never()
	if f.Regulatory == RegulatoryRequired {
		required = schema.Always()
	}

	conditional := func(d schema.FieldDescriptor) schema.FieldDescriptor {
		d.Mandatory = required
		if f.Regulatory == RegulatoryRequired {
			d.When = regulated
		}
		return d
	}

	return schema.GroupDescriptor{
		Name:  "regulatory",
		Title: "Regulatory history",
		Fields: []schema.FieldDescriptor{
			{Name: "currentlyRegulated", Label: "Currently regulated", Type: schema.TypeBoolean, Mandatory: required},
			conditional(text("regulatorName", "Regulator name", validator.KindText, 2, 200, required)),
			conditional(text("regulatorJurisdiction", "Regulator jurisdiction", validator.KindText, 2, 100, required)),
			conditional(text("licenseNumber", "License number", validator.KindRegistrationNumber, 3, 50, required)),
			conditional(schema.FieldDescriptor{
				Name: "licenseDetails", Label: "License details", Type: schema.TypeMultilineText,
				Kind:        validator.KindFreeText,
				Constraints: schema.Constraints{MinLength: 50, MaxLength: 1000},
			}),
		},
	}
}

func complianceGroup(a ActivityType, f Features) schema.GroupDescriptor {
	var fields []schema.FieldDescriptor
	if f.RequiresComplianceOfficer {
		fields = append(fields,
			text("complianceOfficerName", "Compliance officer name", validator.KindFullName, 2, 100, schema.Always()),
			text("complianceOfficerEmail", "Compliance officer email", validator.KindEmail, 0, 0, schema.Always()),
		)
	}
	if f.RequiresMLRO {
		name := text("mlroName", "MLRO name", validator.KindFullName, 2, 100, schema.Always())
		name.RequiredMessage = fmt.Sprintf("MLRO name is required for %s applications", a.Label())
		email := text("mlroEmail", "MLRO email", validator.KindEmail, 0, 0, schema.Always())
		email.RequiredMessage = fmt.Sprintf("MLRO email is required for %s applications", a.Label())
		fields = append(fields, name, email)
	}
	return schema.GroupDescriptor{Name: "compliance", Title: "Compliance officers", Fields: fields}
}

func personnelGroup() schema.GroupDescriptor {
	return schema.GroupDescriptor{
		Name:  "personnel",
		Title: "Key personnel",
		Fields: []schema.FieldDescriptor{{
			Name: "keyIndividuals", Label: "Key individuals", Type: schema.TypeMultiselect,
			Mandatory:       schema.Always(),
			RequiredMessage: "At least one key individual is required",
			Constraints:     schema.Constraints{MinItems: 1},
			Item: &schema.FieldDescriptor{
				Name: "keyIndividual", Label: "Key individual name", Type: schema.TypeText,
				Kind: validator.KindFullName, Mandatory: schema.Always(),
				Constraints: schema.Constraints{MinLength: 2, MaxLength: 100},
			},
		}},
	}
}

// SupportingDocumentSlots is the number of optional supporting uploads.
const SupportingDocumentSlots = 6

func documentsGroup(required []string) schema.GroupDescriptor {
	fields := make([]schema.FieldDescriptor, 0, len(required)+SupportingDocumentSlots)
	for _, key := range required {
		fields = append(fields, schema.FieldDescriptor{
			Name: "documents." + key, Label: DocumentLabel(key),
			Type: schema.TypeFileUpload, Kind: validator.KindDocument, Mandatory: schema.Always(),
		})
	}
	for i := 1; i <= SupportingDocumentSlots; i++ {
		fields = append(fields, schema.FieldDescriptor{
			Name:  fmt.Sprintf("documents.supportingDoc%d", i),
			Label: fmt.Sprintf("Supporting document %d", i),
			Type:  schema.TypeFileUpload, Kind: validator.KindDocument, Mandatory: schema.Never(),
		})
	}
	return schema.GroupDescriptor{Name: "documents", Title: "Documents", Fields: fields}
}

func declarationsGroup() schema.GroupDescriptor {
	declaration := func(key, label string) schema.FieldDescriptor {
		return schema.FieldDescriptor{
			Name: "declarations." + key, Label: label, Type: schema.TypeBoolean,
			Mandatory: schema.Always(), Constraints: schema.Constraints{MustBeTrue: true},
		}
	}
	return schema.GroupDescriptor{
		Name:  "declarations",
		Title: "Declarations",
		Fields: []schema.FieldDescriptor{
			declaration("fitAndProperConfirmation", "Fit and proper confirmation"),
			declaration("accuracyConfirmation", "Accuracy confirmation"),
			declaration("authorityConfirmation", "Authority confirmation"),
			declaration("dataConsentProvided", "Data consent"),
		},
	}
}
