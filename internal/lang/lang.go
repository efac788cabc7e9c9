// Package lang holds per-language letter frequency anchors.
package lang

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedLanguage reports a language code with no profile.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// UnsupportedLanguageError names the rejected code.
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q (available: %s)", e.Code, strings.Join(Codes(), ", "))
}

func (e *UnsupportedLanguageError) Unwrap() error {
	return ErrUnsupportedLanguage
}

// Profile is the statistical anchor for one language.
type Profile struct {
	Code       string
	MostCommon rune
}

var profiles = map[string]rune{
	"en": 'e',
}

// Lookup returns the profile for code. Codes are matched case-insensitively.
func Lookup(code string) (Profile, error) {
	code = strings.TrimSpace(strings.ToLower(code))
	letter, ok := profiles[code]
	if !ok {
		return Profile{}, &UnsupportedLanguageError{Code: code}
	}
	return Profile{Code: code, MostCommon: letter}, nil
}

// Codes lists the supported language codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(profiles))
	for code := range profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Profiles lists every profile sorted by code.
func Profiles() []Profile {
	codes := Codes()
	out := make([]Profile, 0, len(codes))
	for _, code := range codes {
		out = append(out, Profile{Code: code, MostCommon: profiles[code]})
	}
	return out
}
