package sanitizer

import (
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRegex   = regexp.MustCompile(`\s+`)
	htmlTagRegex      = regexp.MustCompile(`<[^>]*>`)
	unsafeFilename    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	repeatUnderscores = regexp.MustCompile(`_+`)
)

// Trim removes leading and trailing whitespace from the string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimToLower trims whitespace and converts to lowercase in one operation.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TrimToUpper trims whitespace and converts to uppercase in one operation.
func TrimToUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ContainsHTML reports whether s carries an angle bracket.
// Any '<' or '>' is treated as markup, regardless of whether it forms a tag.
func ContainsHTML(s string) bool {
	return strings.ContainsAny(s, "<>")
}

// StripHTML removes tags and decodes entities for safe text extraction.
func StripHTML(s string) string {
	stripped := htmlTagRegex.ReplaceAllString(s, "")
	return html.UnescapeString(stripped)
}

// RemoveExtraWhitespace collapses runs of whitespace into a single space.
func RemoveExtraWhitespace(s string) string {
	normalized := whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(normalized)
}

// SingleLine converts multi-line strings to single line by replacing line breaks with spaces.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	return RemoveExtraWhitespace(s)
}

// RemoveControlChars drops control characters while preserving common whitespace.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// KeepDigits keeps only numeric digits, removing all other characters.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// StripPhoneFormatting removes the separators people type into phone numbers:
// spaces, hyphens, parentheses and the leading plus.
func StripPhoneFormatting(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '+':
			return -1
		}
		return r
	}, s)
}

// RuneLength counts characters rather than bytes.
func RuneLength(s string) int {
	return len([]rune(s))
}

// SanitizeFilename makes a user supplied file name safe to use as part of a
// storage key. Unsafe characters become underscores, repeated underscores
// collapse, and the extension is lowercased. Empty results fall back to "file".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" {
		name = ""
	}

	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))

	base = unsafeFilename.ReplaceAllString(base, "_")
	base = repeatUnderscores.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_.")
	if base == "" {
		base = "file"
	}

	ext = unsafeFilename.ReplaceAllString(ext, "")
	if ext == "." {
		ext = ""
	}

	return base + ext
}
