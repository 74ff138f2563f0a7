// Package match reconciles driver identities across independently-maintained
// upstream vocabularies. The two vocabularies disagree on full-name
// formatting (diacritics, middle names, punctuation), so matching runs on
// normalized names with a fail-closed ambiguity rule: a family-name fallback
// that hits more than one row refuses to pick.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Row is one metadata record from an upstream vocabulary.
type Row struct {
	// Key is the upstream's own stable identifier for this record.
	Key       string
	FirstName string
	LastName  string
	// Code is the 3-letter acronym, empty when the upstream has none.
	Code string
}

// Query is the roster entry being resolved against the rows.
type Query struct {
	FirstName string
	LastName  string
	Code      string
}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases, trims, strips diacritics and punctuation, and
// collapses runs of whitespace to single spaces.
func Normalize(s string) string {
	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// FullName returns the normalized compound key for a first/last name pair.
func FullName(first, last string) string {
	return strings.TrimSpace(Normalize(first) + " " + Normalize(last))
}

// Find resolves q to exactly one row, or reports no match.
//
// An exact normalized first+last name match and an exact code match carry
// equal priority: either one counts as found, but if they point at different
// rows the result is ambiguous and refused. When neither exists, a
// family-name-only fallback is tried; it too is refused if it matches more
// than one row.
func Find(q Query, rows []Row) (Row, bool) {
	wantName := FullName(q.FirstName, q.LastName)
	wantCode := strings.ToUpper(strings.TrimSpace(q.Code))

	exact := map[string]Row{}
	for _, r := range rows {
		if wantName != "" && FullName(r.FirstName, r.LastName) == wantName {
			exact[r.Key] = r
		}
		if wantCode != "" && r.Code != "" && strings.ToUpper(strings.TrimSpace(r.Code)) == wantCode {
			exact[r.Key] = r
		}
	}
	if len(exact) == 1 {
		for _, r := range exact {
			return r, true
		}
	}
	if len(exact) > 1 {
		// Code and name disagree on which row this is. Refuse.
		return Row{}, false
	}

	wantLast := Normalize(q.LastName)
	if wantLast == "" {
		return Row{}, false
	}
	var found Row
	var hits int
	for _, r := range rows {
		if Normalize(r.LastName) == wantLast {
			found = r
			hits++
		}
	}
	if hits == 1 {
		return found, true
	}
	// Zero or several rows share the family name; never guess.
	return Row{}, false
}
