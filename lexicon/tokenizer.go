package lexicon

import (
	"regexp"
	"strings"
)

// englishTokenPattern matches a maximal ASCII token: letters, digits,
// hyphen, underscore, apostrophe.
var englishTokenPattern = regexp.MustCompile(`[A-Za-z0-9\-_']+`)

// englishPrefix marks a mixed-script fragment emitted by MixTerms as
// an English token rather than a run of Chinese residue.
const englishPrefix = "E"

// MixTerms splits a delimiter-free sentence on ASCII whitespace and,
// within each whitespace-separated part, separates maximal ASCII
// tokens from the Chinese residue surrounding them.
//
// For each part: the Chinese substring before a match (if non-empty)
// is emitted as-is, then the matched ASCII token is lowercased and
// prefixed with "E". Trailing Chinese residue after the last match is
// emitted last. Concatenating the emissions (stripping "E" prefixes)
// reproduces the part with whitespace removed and its English tokens
// lowercased.
func MixTerms(sentence string) []string {
	var out []string
	for _, part := range strings.Fields(sentence) {
		if part == "" {
			continue
		}
		matches := englishTokenPattern.FindAllStringIndex(part, -1)
		prev := 0
		for _, m := range matches {
			start, end := m[0], m[1]
			if start > prev {
				out = append(out, part[prev:start])
			}
			out = append(out, englishPrefix+strings.ToLower(part[start:end]))
			prev = end
		}
		if prev < len(part) {
			out = append(out, part[prev:])
		}
	}
	return out
}

// IsEnglish reports whether a fragment emitted by MixTerms is an
// English token (leading "E" followed by an ASCII byte). CJK code
// points are always non-ASCII, so this never false-positives on
// Chinese residue.
func IsEnglish(fragment string) bool {
	if len(fragment) < 2 || fragment[0] != 'E' {
		return false
	}
	return fragment[1] < 0x80
}

// StripEnglishPrefix removes the leading "E" marker from an English
// fragment. Callers should check IsEnglish first.
func StripEnglishPrefix(fragment string) string {
	return strings.TrimPrefix(fragment, englishPrefix)
}
