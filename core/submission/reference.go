package submission

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReferencePrefix starts every application reference.
const ReferencePrefix = "DFSA"

// Period is the sequence period of t, formatted YYYYMM.
func Period(t time.Time) string {
	return t.UTC().Format("200601")
}

// Reference formats DFSA-YYYYMM-NNNNN. Sequences above 99999 widen the
// last group rather than wrap.
func Reference(t time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%05d", ReferencePrefix, Period(t), seq)
}

// ParseReference returns the period and sequence of a reference.
func ParseReference(ref string) (string, int64, error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 3 || parts[0] != ReferencePrefix || len(parts[1]) != 6 || len(parts[2]) < 5 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	if _, err := time.Parse("200601", parts[1]); err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq <= 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return parts[1], seq, nil
}

// IsReference reports whether s looks like an application reference.
func IsReference(s string) bool {
	_, _, err := ParseReference(s)
	return err == nil
}
