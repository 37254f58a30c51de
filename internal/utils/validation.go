package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxSourceIDLength    = 100
	maxFilterValueLength = 200
)

var (
	ErrEmptyValue        = errors.New("value cannot be empty")
	ErrValueTooLong      = errors.New("value too long")
	ErrInvalidCharacters = errors.New("value contains invalid characters")
	ErrLatitudeRange     = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange    = errors.New("longitude must be between -180 and 180")
)

var (
	// Markup and SQL comment sequences never appear in region, province or
	// status names.
	suspiciousPattern = regexp.MustCompile(`[<>]|--|/\*|\*/`)

	markupPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateSourceID checks a route source identifier taken from a URL.
// Sources are file names as recorded in the route table, so spaces,
// punctuation and non-ASCII letters are accepted; path separators and
// control characters are not. Membership in the table is checked by the
// caller.
func ValidateSourceID(id string) error {
	switch {
	case id == "":
		return ErrEmptyValue
	case !utf8.ValidString(id):
		return ErrInvalidCharacters
	case utf8.RuneCountInString(id) > maxSourceIDLength:
		return fmt.Errorf("%w (max %d characters)", ErrValueTooLong, maxSourceIDLength)
	case id == "." || id == "..":
		return ErrInvalidCharacters
	}
	if strings.ContainsAny(id, `/\`) || strings.IndexFunc(id, unicode.IsControl) >= 0 {
		return ErrInvalidCharacters
	}
	return nil
}

// ValidateFilterValue checks one region, province or status filter value.
// Empty values are allowed; callers skip them.
func ValidateFilterValue(value string) error {
	if len(value) > maxFilterValueLength {
		return fmt.Errorf("%w (max %d characters)", ErrValueTooLong, maxFilterValueLength)
	}
	if suspiciousPattern.MatchString(value) {
		return ErrInvalidCharacters
	}
	return nil
}

// CleanFilterValue validates value and returns it trimmed, with any markup removed.
func CleanFilterValue(value string) (string, error) {
	if err := ValidateFilterValue(value); err != nil {
		return "", err
	}
	return strings.TrimSpace(markupPattern.ReplaceAllString(value, "")), nil
}

// ValidateCoordinate reports whether lat/lon lie on the globe.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return ErrLatitudeRange
	}
	if lon < -180 || lon > 180 {
		return ErrLongitudeRange
	}
	return nil
}
