package pathway

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownActivityType is returned for an activity tag outside the closed set.
var ErrUnknownActivityType = errors.New("pathway: unknown activity type")

// ActivityType is the kind of regulated activity an applicant applies for.
type ActivityType string

const (
	FinancialServices      ActivityType = "FINANCIAL_SERVICES"
	DNFBP                  ActivityType = "DNFBP"
	CryptoToken            ActivityType = "CRYPTO_TOKEN"
	RegisteredAuditor      ActivityType = "REGISTERED_AUDITOR"
	CryptoTokenRecognition ActivityType = "CRYPTO_TOKEN_RECOGNITION"
)

// Pathway is the letter of the onboarding track an activity follows.
type Pathway string

const (
	PathwayA Pathway = "A"
	PathwayB Pathway = "B"
	PathwayC Pathway = "C"
	PathwayD Pathway = "D"
	PathwayE Pathway = "E"
)

// ActivityTypes lists every activity in pathway order.
func ActivityTypes() []ActivityType {
	return []ActivityType{FinancialServices, DNFBP, CryptoToken, RegisteredAuditor, CryptoTokenRecognition}
}

// ParseActivityType accepts an activity tag in any letter case.
func ParseActivityType(s string) (ActivityType, error) {
	a := ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownActivityType, s)
	}
	return a, nil
}

// Valid reports whether a is one of the five activity types.
func (a ActivityType) Valid() bool {
	_, err := a.Pathway()
	return err == nil
}

// Pathway returns the onboarding track of the activity.
func (a ActivityType) Pathway() (Pathway, error) {
	switch a {
	case FinancialServices:
		return PathwayA, nil
	case DNFBP:
		return PathwayB, nil
	case CryptoToken:
		return PathwayC, nil
	case RegisteredAuditor:
		return PathwayD, nil
	case CryptoTokenRecognition:
		return PathwayE, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivityType, string(a))
}

// Label is the human-readable activity name.
func (a ActivityType) Label() string {
	switch a {
	case FinancialServices:
		return "Financial Services"
	case DNFBP:
		return "DNFBP"
	case CryptoToken:
		return "Crypto Token"
	case RegisteredAuditor:
		return "Registered Auditor"
	case CryptoTokenRecognition:
		return "Crypto Token Recognition"
	}
	return string(a)
}
