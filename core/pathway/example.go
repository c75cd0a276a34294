package pathway

import (
	"github.com/dmitrymomot/onboarding/core/schema"
)

const exampleDocumentBase = "https://documents.example.com/"

// Example returns a complete application for the activity that passes
// validation. It backs the CLI sample command and serves as a fixture.
func Example(a ActivityType) (schema.Record, error) {
	p, err := a.Pathway()
	if err != nil {
		return nil, err
	}
	f, err := FeaturesOf(a)
	if err != nil {
		return nil, err
	}

	r := schema.Record{
		"activityType":              string(a),
		"pathway":                   string(p),
		"suggestedCompanyName":      "Acme Capital Ltd",
		"contactName":               "Jane Doe",
		"contactEmail":              "jane.doe@example.com",
		"contactPhone":              "+971 4 123 4567",
		"legalEntityName":           "Acme Capital Ltd",
		"incorporationJurisdiction": "United Arab Emirates",
		"incorporationDate":         "2020-01-15",
		"registrationNumber":        "CL-12345",
		"businessAddress":           exampleAddress(),
		"entityType":                "DIFC_INCORPORATION",
	}
	if f.IncludesTaxID {
		r["taxIdentificationNumber"] = "TRN-100200300"
	}
	if f.IncludesMailingAddress {
		r["sameAsBusinessAddress"] = true
	}
	if f.IncludesParentCompany {
		r["hasParentCompany"] = false
	}
	if f.GroupStructureRequired {
		r["groupStructureDiagram"] = exampleDocumentBase + "group-structure.pdf"
	}

	if f.RequiresShareholderTable {
		r["shareholders"] = []any{
			exampleShareholder("sh-1", "Jane Doe", 60),
			exampleShareholder("sh-2", "John Smith", 40),
		}
	}
	if f.RequiresBeneficialOwnerTable {
		r["beneficialOwners"] = []any{
			map[string]any{
				"id":                "bo-1",
				"name":              "Jane Doe",
				"nationality":       "British",
				"dateOfBirth":       "1980-05-01",
				"percentageControl": 100,
				"controlType":       "direct",
			},
		}
	}
	if f.RequiresFinancialInfo {
		capital := f.MinimumCapital * 5
		r["proposedCapitalUSD"] = capital
		r["fundingSources"] = []any{
			map[string]any{
				"id":          "fs-1",
				"sourceType":  "equity",
				"description": "Equity contribution from founding shareholders",
				"amountUSD":   capital,
			},
		}
	}
	if f.Regulatory != RegulatoryNone {
		r["currentlyRegulated"] = false
	}
	if f.RequiresComplianceOfficer {
		r["complianceOfficerName"] = "John Smith"
		r["complianceOfficerEmail"] = "john.smith@example.com"
	}
	if f.RequiresMLRO {
		r["mlroName"] = "Amira Hassan"
		r["mlroEmail"] = "amira.hassan@example.com"
	}
	if f.RequiresKeyPersonnel {
		r["keyIndividuals"] = []any{"Jane Doe", "John Smith"}
	}

	docs := make(map[string]any)
	for _, key := range append(append([]string(nil), baseDocuments...), f.Documents...) {
		docs[key] = exampleDocumentBase + key + ".pdf"
	}
	r["documents"] = docs
	r["declarations"] = map[string]any{
		"fitAndProperConfirmation": true,
		"accuracyConfirmation":     true,
		"authorityConfirmation":    true,
		"dataConsentProvided":      true,
	}
	return r, nil
}

func exampleAddress() map[string]any {
	return map[string]any{
		"line1":      "Gate Building, Level 3",
		"city":       "Dubai",
		"state":      "Dubai",
		"postalCode": "00000",
		"country":    "United Arab Emirates",
	}
}

func exampleShareholder(id, name string, pct float64) map[string]any {
	return map[string]any{
		"id":                  id,
		"name":                name,
		"nationality":         "British",
		"idType":              "passport",
		"idNumber":            "P1234567",
		"percentageOwnership": pct,
		"dateAcquired":        "2020-01-15",
	}
}
