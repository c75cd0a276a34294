// Package pathway maps a regulated activity to its onboarding track and
// builds the form schema for that track.
//
// There are five activities, each with its own pathway letter:
//
//	FINANCIAL_SERVICES        A
//	DNFBP                     B
//	CRYPTO_TOKEN              C
//	REGISTERED_AUDITOR        D
//	CRYPTO_TOKEN_RECOGNITION  E
//
// Pathway schemas are composed from shared sections. FeaturesOf says which
// sections an activity switches on and Build assembles them:
//
//	s, err := pathway.Select(pathway.FinancialServices)
//	if err != nil {
//		return err
//	}
//	res, err := form.Validate(s, record)
//
// Unknown activity tags are rejected with ErrUnknownActivityType rather than
// falling back to a default schema.
package pathway
