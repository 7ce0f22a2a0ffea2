package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// pitchNameRegex matches the pitch name grammar: letter, optional
// quarter-tone accidental suffix, single octave digit.
var pitchNameRegex = regexp.MustCompile(`^[A-G](b-|b\+|b|#-|#\+|#|-|\+)?[0-8]$`)

// ValidatePitchName checks that name is syntactically a pitch name.
// It does not consult the pitch table; a name can be well-formed and
// still be absent from it.
func ValidatePitchName(name string) error {
	if name == "" {
		return New(ErrCodeUnknownPitch, "pitch name cannot be empty")
	}
	if !pitchNameRegex.MatchString(name) {
		return New(ErrCodeUnknownPitch, "malformed pitch name: %q", name)
	}
	return nil
}

// ValidateOutputDir validates an output directory for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a cache backend URL.
// Only redis, rediss and mongodb schemes are accepted.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	for _, scheme := range []string{"redis://", "rediss://", "mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use redis, rediss, mongodb or mongodb+srv scheme")
}
