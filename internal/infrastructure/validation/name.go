package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidName indicates that a name doesn't conform to naming conventions
	ErrInvalidName = errors.New("name must contain lowercase letters, numbers, and hyphens only")

	// ErrNameTooLong indicates that a name exceeds the maximum length
	ErrNameTooLong = errors.New("name exceeds maximum length of 63 characters")

	// ErrNameEmpty indicates that a name is empty
	ErrNameEmpty = errors.New("name cannot be empty")

	// ErrNameStartsWithHyphen indicates that a name starts with a hyphen
	ErrNameStartsWithHyphen = errors.New("name cannot start with a hyphen")

	// ErrNameEndsWithHyphen indicates that a name ends with a hyphen
	ErrNameEndsWithHyphen = errors.New("name cannot end with a hyphen")
)

// nameRegex matches RFC 1123 style labels:
// - lowercase letters (a-z), numbers (0-9), and hyphens (-) only
// - must not start or end with a hyphen
// - maximum 63 characters
var nameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidateNetworkName validates that a network name is a usable RFC 1123
// label. Network names end up as record keys and log fields, so the character
// set is kept deliberately tight.
func ValidateNetworkName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if len(name) > 63 {
		return ErrNameTooLong
	}
	if strings.HasPrefix(name, "-") {
		return ErrNameStartsWithHyphen
	}
	if strings.HasSuffix(name, "-") {
		return ErrNameEndsWithHyphen
	}
	if !nameRegex.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}
