package pathway

import (
	"slices"
	"time"
)

// RegulatoryMode says how a pathway treats the current-regulation section.
type RegulatoryMode int

const (
	RegulatoryNone RegulatoryMode = iota
	RegulatoryOptional
	RegulatoryRequired
)

// Features are the sections and rules a pathway switches on.
type Features struct {
	RequiresShareholderTable     bool
	RequiresBeneficialOwnerTable bool
	RequiresFinancialInfo        bool
	RequiresMLRO                 bool
	RequiresComplianceOfficer    bool
	RequiresKeyPersonnel         bool

	Regulatory             RegulatoryMode
	IncludesTaxID          bool
	IncludesMailingAddress bool
	IncludesParentCompany  bool
	GroupStructureRequired bool

	// MinimumCapital is the lowest acceptable proposed capital in USD.
	MinimumCapital float64
	// Documents are required in addition to the base documents.
	Documents []string
}

// Document keys. They are the record keys under "documents".
const (
	DocCertificateOfIncorporation = "certificateOfIncorporation"
	DocArticlesOfAssociation      = "articlesOfAssociation"
	DocBusinessPlan               = "businessPlan"
	DocComplianceManual           = "complianceManual"
	DocAMLPolicy                  = "amlPolicy"
	DocShareholderRegistry        = "shareholderRegistry"
	DocWhitePaper                 = "whitePaper"
	DocTokenEconomicsModel        = "tokenEconomicsModel"
	DocCryptoShareholderRegistry  = "cryptoShareholderRegistry"
)

var baseDocuments = []string{DocCertificateOfIncorporation, DocArticlesOfAssociation, DocBusinessPlan}

var documentLabels = map[string]string{
	DocCertificateOfIncorporation: "Certificate of incorporation",
	DocArticlesOfAssociation:      "Articles of association",
	DocBusinessPlan:               "Business plan",
	DocComplianceManual:           "Compliance manual",
	DocAMLPolicy:                  "AML policy",
	DocShareholderRegistry:        "Shareholder registry",
	DocWhitePaper:                 "White paper",
	DocTokenEconomicsModel:        "Token economics model",
	DocCryptoShareholderRegistry:  "Crypto shareholder registry",
}

// DocumentLabel returns the display name of a document key.
func DocumentLabel(key string) string {
	if l, ok := documentLabels[key]; ok {
		return l
	}
	return key
}

// FeaturesOf returns the feature set of an activity.
func FeaturesOf(a ActivityType) (Features, error) {
	switch a {
	case FinancialServices:
		return Features{
			RequiresShareholderTable:     true,
			RequiresBeneficialOwnerTable: true,
			RequiresFinancialInfo:        true,
			RequiresMLRO:                 true,
			RequiresComplianceOfficer:    true,
			RequiresKeyPersonnel:         true,
			Regulatory:                   RegulatoryRequired,
			IncludesTaxID:                true,
			IncludesMailingAddress:       true,
			IncludesParentCompany:        true,
			GroupStructureRequired:       true,
			MinimumCapital:               50000,
			Documents:                    []string{DocComplianceManual, DocAMLPolicy, DocShareholderRegistry},
		}, nil
	case DNFBP:
		return Features{
			RequiresKeyPersonnel:   true,
			Regulatory:             RegulatoryOptional,
			IncludesTaxID:          true,
			IncludesMailingAddress: true,
			IncludesParentCompany:  true,
			GroupStructureRequired: true,
		}, nil
	case CryptoToken:
		return Features{
			RequiresShareholderTable:     true,
			RequiresBeneficialOwnerTable: true,
			RequiresFinancialInfo:        true,
			RequiresComplianceOfficer:    true,
			RequiresKeyPersonnel:         true,
			Regulatory:                   RegulatoryRequired,
			IncludesTaxID:                true,
			IncludesMailingAddress:       true,
			IncludesParentCompany:        true,
			GroupStructureRequired:       true,
			MinimumCapital:               1,
			Documents:                    []string{DocWhitePaper, DocTokenEconomicsModel, DocCryptoShareholderRegistry},
		}, nil
	case RegisteredAuditor:
		return Features{
			RequiresKeyPersonnel:   true,
			IncludesTaxID:          true,
			IncludesMailingAddress: true,
			IncludesParentCompany:  true,
			GroupStructureRequired: true,
		}, nil
	case CryptoTokenRecognition:
		return Features{}, nil
	}
	return Features{}, unknown(a)
}

// RequiredDocuments lists the documents an activity must upload: the three
// base documents followed by the pathway-specific ones.
func RequiredDocuments(a ActivityType) ([]string, error) {
	f, err := FeaturesOf(a)
	if err != nil {
		return nil, err
	}
	return slices.Concat(baseDocuments, f.Documents), nil
}

// EstimatedTime is the expected time to complete the application.
func EstimatedTime(a ActivityType) (time.Duration, error) {
	var minutes int
	switch a {
	case FinancialServices:
		minutes = 30
	case DNFBP:
		minutes = 20
	case CryptoToken:
		minutes = 45
	case RegisteredAuditor:
		minutes = 15
	case CryptoTokenRecognition:
		minutes = 10
	default:
		return 0, unknown(a)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// QuestionCount is the number of questions the application asks.
func QuestionCount(a ActivityType) (int, error) {
	switch a {
	case FinancialServices:
		return 28, nil
	case DNFBP:
		return 15, nil
	case CryptoToken:
		return 40, nil
	case RegisteredAuditor:
		return 12, nil
	case CryptoTokenRecognition:
		return 10, nil
	}
	return 0, unknown(a)
}

func unknown(a ActivityType) error {
	_, err := a.Pathway()
	return err
}
