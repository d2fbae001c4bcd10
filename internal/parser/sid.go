package parser

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxKeyLength is the maximum length of a KPI key.
	MaxKeyLength = 32
)

// keyRegex validates key format: lowercase alphanumeric and dashes.
var keyRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateKey checks if a string is a valid KPI key.
func ValidateKey(key string) bool {
	if key == "" || len(key) > MaxKeyLength {
		return false
	}
	return keyRegex.MatchString(key)
}

// Slugify converts a label to a key.
// Example: "CMT Study (Level 1)" -> "cmt-study-level-1"
func Slugify(label string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(label) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r) && r < unicode.MaxASCII:
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	result := sb.String()

	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")

	if len(result) > MaxKeyLength {
		result = strings.TrimRight(result[:MaxKeyLength], "-")
	}
	return result
}

// NormalizeKey returns key when valid and its slug otherwise.
func NormalizeKey(input string) string {
	input = strings.TrimSpace(input)
	if ValidateKey(input) {
		return input
	}
	return Slugify(input)
}
