// Package status maps free-text equipment status values onto the canonical
// statuses stored by the tracker.
package status

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// synonyms maps folded status text to a canonical status. Functional is the
// fallback and has no entries.
var synonyms = map[string]domain.Status{
	// out of order
	"en panne":        domain.StatusBroken,
	"hs":              domain.StatusBroken,
	"non fonctionnel": domain.StatusBroken,
	"broken":          domain.StatusBroken,
	"defective":       domain.StatusBroken,
	// maintenance
	"maintenance":    domain.StatusMaintenance,
	"en maintenance": domain.StatusMaintenance,
}

var folder = cases.Fold()

// Normalize maps a raw status string (from a spreadsheet cell, a form field or
// an API request) to a canonical status. Unrecognized and empty input is
// treated as functional.
func Normalize(raw string) domain.Status {
	s, _ := Parse(raw)
	return s
}

// Parse is Normalize that also reports whether raw matched a known synonym.
// Empty input counts as recognized.
func Parse(raw string) (domain.Status, bool) {
	key := fold(raw)
	if key == "" {
		return domain.StatusFunctional, true
	}

	if s, ok := synonyms[key]; ok {
		return s, true
	}

	if key == fold(string(domain.StatusFunctional)) {
		return domain.StatusFunctional, true
	}

	return domain.StatusFunctional, false
}

func fold(raw string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(raw)))
}
