package validator

import "regexp"

// Limits are length bounds, counted in characters.
type Limits struct {
	Min int
	Max int
}

// Field length limits shared across every onboarding form.
var (
	FirstNameLimits          = Limits{1, 100}
	LastNameLimits           = Limits{1, 200}
	FullNameLimits           = Limits{1, 255}
	EmailLimits              = Limits{5, 254}
	PhoneDigitLimits         = Limits{7, 15}
	URLLimits                = Limits{5, 2048}
	TextSingleLineLimits     = Limits{1, 255}
	TextMultiLineSmallLimits = Limits{1, 750}
	TextMultiLineLargeLimits = Limits{1, 2000}
	AddressLimits            = Limits{1, 255}
	CityLimits               = Limits{1, 100}
	StateLimits              = Limits{1, 100}
	PostalCodeLimits         = Limits{1, 20}
	PassportLimits           = Limits{5, 10}

	FirmNameLimits            = Limits{2, 200}
	TradingNameLimits         = Limits{2, 100}
	RegistrationNumberLimits  = Limits{1, 50}
	BusinessPlanSummaryLimits = Limits{50, 2000}
)

// Character classes. Names accept letters in any script, combining marks,
// spaces, hyphens and apostrophes.
var (
	namePattern           = regexp.MustCompile(`^[\p{L}\p{M}' -]+$`)
	emailPattern          = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern          = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
	textSingleLinePattern = regexp.MustCompile(`^[\p{L}\p{N}_\s.,'!?&()/:;#@%+-]+$`)
	addressPattern        = regexp.MustCompile(`^[\p{L}\p{M}0-9\s,'./#-]+$`)
	alphanumericPattern   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	postalCodePattern     = regexp.MustCompile(`^[A-Za-z0-9 -]+$`)

	firmNamePattern           = regexp.MustCompile(`^[\p{L}\p{M}0-9\s'.&(),-]+$`)
	registrationNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	applicationRefPattern     = regexp.MustCompile(`^DFSA-(\d{4})(\d{2})-\d{5}$`)
	countryCodePattern        = regexp.MustCompile(`^[A-Za-z]{2}$`)

	percentagePattern  = regexp.MustCompile(`^\d{1,3}(\.\d{1,2})?$`)
	twoDecimalPattern  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	wholeNumberPattern = regexp.MustCompile(`^\d+$`)
	isoDatePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// HTMLMessage is returned by every text validator when the input carries markup.
const HTMLMessage = "Input cannot contain HTML characters (< or >)"
