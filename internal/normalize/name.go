package normalize

import (
	"fmt"
	"strings"
	"unicode"
)

// Version selects how aggressively company names are canonicalized.
type Version int

const (
	// VersionLegacy lowercases and collapses whitespace only.
	VersionLegacy Version = iota
	// VersionAggressive additionally strips punctuation, stop words and
	// legal suffixes ("inc", "llc", ...) when they appear as whole tokens.
	VersionAggressive
)

// ParseVersion maps a config string to a Version. Unrecognized values fall
// back to aggressive, which is the canonical mode.
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "v2", "aggressive":
		return VersionAggressive, nil
	case "v1", "legacy":
		return VersionLegacy, nil
	}
	return VersionAggressive, fmt.Errorf("unknown normalizer version %q", s)
}

func (v Version) String() string {
	if v == VersionLegacy {
		return "legacy"
	}
	return "aggressive"
}

// Stop words dropped when they occur as standalone tokens. "and" covers the
// "&" replacement as well, so "A & B" and "A B" canonicalize identically.
var stopWords = map[string]bool{
	"the": true,
	"and": true,
}

var legalSuffixes = map[string]bool{
	"inc":           true,
	"incorporated":  true,
	"llc":           true,
	"l.l.c":         true,
	"ltd":           true,
	"limited":       true,
	"corp":          true,
	"corporation":   true,
	"gmbh":          true,
	"plc":           true,
	"co":            true,
	"company":       true,
	"holdings":      true,
	"group":         true,
	"international": true,
}

// Name canonicalizes a raw company name for comparison. Empty input yields
// the empty string; the function never fails. Applying it twice yields the
// same result as applying it once.
func Name(raw string, version Version) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(raw)

	if version == VersionLegacy {
		return strings.Join(strings.Fields(s), " ")
	}

	s = strings.ReplaceAll(s, "&", " and ")

	// Strip punctuation to whitespace so "A.B.C. Plumbing" tokenizes cleanly
	b := strings.Builder{}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	tokens := make([]string, 0, 8)
	for _, token := range strings.Fields(b.String()) {
		if stopWords[token] || legalSuffixes[token] {
			continue
		}
		tokens = append(tokens, token)
	}

	return strings.Join(tokens, " ")
}

// BlockingKey returns the uppercased first rune of a normalized name, or ""
// for empty names. Records with empty keys never enter candidate generation.
func BlockingKey(normalized string) string {
	for _, r := range normalized {
		return string(unicode.ToUpper(r))
	}
	return ""
}
