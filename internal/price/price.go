// Package price extracts a numeric major-currency price from the catalog's
// price-overview field, which appears either as a structured object or as a
// stringified object depending on the export path.
package price

import (
	"strconv"
	"strings"
)

// Overview is the structured form of the catalog price field. Amounts are in
// minor currency units (cents).
type Overview struct {
	Final           int
	Initial         int
	DiscountPercent int
	Currency        string
}

// finalMarkers precede the final-price sub-field in the stringified form.
var finalMarkers = []string{"'final':", `"final":`}

// ParseOverview parses the stringified object form. Only the final price is
// required; initial, discount_percent and currency are best effort. Returns
// false when the final-price marker is absent or its token is not numeric.
func ParseOverview(raw string) (Overview, bool) {
	final, ok := intAfter(raw, finalMarkers)
	if !ok {
		return Overview{}, false
	}

	o := Overview{Final: final}
	o.Initial, _ = intAfter(raw, []string{"'initial':", `"initial":`})
	o.DiscountPercent, _ = intAfter(raw, []string{"'discount_percent':", `"discount_percent":`})
	o.Currency = stringAfter(raw, []string{"'currency':", `"currency":`})

	return o, true
}

// Extract returns the major-currency price for any supported representation
// of the price field: an Overview, a map with named sub-fields, or the raw
// stringified object. Any malformation yields (0, false) rather than an
// error; a missing price is absence of data, not a failure.
func Extract(v any) (float64, bool) {
	switch p := v.(type) {
	case Overview:
		return float64(p.Final) / 100, true
	case *Overview:
		if p == nil {
			return 0, false
		}

		return float64(p.Final) / 100, true
	case map[string]any:
		final, ok := numField(p, "final")
		if !ok {
			return 0, false
		}

		return final / 100, true
	case string:
		o, ok := ParseOverview(p)
		if !ok {
			return 0, false
		}

		return float64(o.Final) / 100, true
	default:
		return 0, false
	}
}

// intAfter finds the first marker and parses the integer token that follows
// it, up to the next comma or closing brace.
func intAfter(raw string, markers []string) (int, bool) {
	for _, marker := range markers {
		_, rest, found := strings.Cut(raw, marker)
		if !found {
			continue
		}

		token := rest
		if i := strings.IndexAny(token, ",}"); i >= 0 {
			token = token[:i]
		}

		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return 0, false
		}

		return n, true
	}

	return 0, false
}

func stringAfter(raw string, markers []string) string {
	for _, marker := range markers {
		_, rest, found := strings.Cut(raw, marker)
		if !found {
			continue
		}

		token := rest
		if i := strings.IndexAny(token, ",}"); i >= 0 {
			token = token[:i]
		}

		return strings.Trim(strings.TrimSpace(token), `'"`)
	}

	return ""
}

func numField(m map[string]any, key string) (float64, bool) {
	switch n := m[key].(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
