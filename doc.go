// Package onboarding is the entry point to the DFSA onboarding rules engine.
//
// It validates applications for the five regulated activities, each mapped
// to its own pathway:
//
//	FINANCIAL_SERVICES        A
//	DNFBP                     B
//	CRYPTO_TOKEN              C
//	REGISTERED_AUDITOR        D
//	CRYPTO_TOKEN_RECOGNITION  E
//
// The functions here cover the common flow:
//
//	s, err := onboarding.SelectSchema(onboarding.FinancialServices)
//	if err != nil {
//		return err
//	}
//	res, err := onboarding.Validate(s, record)
//	if err != nil {
//		return err // malformed schema
//	}
//	if !res.Valid {
//		return res.Errors // field path -> message
//	}
//	progress := onboarding.Score(s, record)
//
// # Packages
//
// Core building blocks:
//
//	github.com/dmitrymomot/onboarding/core/validator   - Field validators and composite rules
//	github.com/dmitrymomot/onboarding/core/schema      - Form schema descriptors and record paths
//	github.com/dmitrymomot/onboarding/core/pathway     - Activity to pathway mapping and schema builder
//	github.com/dmitrymomot/onboarding/core/form        - Whole-record validation orchestrator
//	github.com/dmitrymomot/onboarding/core/completion  - Completion scoring
//	github.com/dmitrymomot/onboarding/core/apperror    - Error taxonomy and user-facing formatting
//	github.com/dmitrymomot/onboarding/core/sanitizer   - String and filename clean-up
//	github.com/dmitrymomot/onboarding/core/storage     - Document storage contract and upload policy
//	github.com/dmitrymomot/onboarding/core/documents   - Account document library
//	github.com/dmitrymomot/onboarding/core/submission  - Drafts and the submission gate
//	github.com/dmitrymomot/onboarding/core/config      - Environment configuration loading
//	github.com/dmitrymomot/onboarding/core/logger      - slog setup and attribute helpers
//	github.com/dmitrymomot/onboarding/core/health      - Dependency readiness checks
//
// Integrations:
//
//	github.com/dmitrymomot/onboarding/integration/storage/s3      - S3 document storage
//	github.com/dmitrymomot/onboarding/integration/database/pg     - PostgreSQL application repository
//	github.com/dmitrymomot/onboarding/integration/database/redis  - Redis draft store
//
// The dfsa command under cmd/dfsa exposes the same operations on the
// command line.
package onboarding
