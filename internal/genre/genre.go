// Package genre maps free-text, multi-language genre strings onto the fixed
// taxonomy used by the merged dataset.
package genre

import (
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"gamepipe/pkg/utils"
)

// Unknown is the sentinel label for values that cannot be classified.
const Unknown = "Desconocido"

type alias struct {
	fragment string
	label    string
}

// aliases is evaluated top to bottom, first match wins. The order is part of
// the contract: several fragments can match the same input ("multiplayer"
// before "massively" both map to MMO, "free to play" must win over any later
// fragment it contains), so this must stay a slice, never a map.
var aliases = []alias{
	{"action", "Acción"},
	{"adventure", "Aventura"},
	{"casual", "Casual"},
	{"simulation", "Simulación"},
	{"sport", "Deportes"},
	{"rpg", "RPG"},
	{"strategy", "Estrategia"},
	{"indie", "Indie"},
	{"racing", "Carreras"},
	{"multiplayer", "MMO"},
	{"massively", "MMO"},
	{"free to play", "Free To Play"},
	{"sexual", "Contenido Adulto"},
	{"early access", "Acceso Anticipado"},
}

// corruptionChars are characters that only show up in mis-encoded upstream
// genre fields; together with digits they route a value to Unknown instead
// of the capitalized fallback.
const corruptionChars = "!*></"

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

type genreEntry struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// First extracts the first genre description from the catalog's structured
// genre-list field. The field arrives either as real JSON or as a
// single-quoted object repr; both forms are accepted. Returns false when the
// value cannot be interpreted as a non-empty genre list.
func First(raw string) (string, bool) {
	var entries []genreEntry

	if err := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &entries); err != nil {
		return "", false
	}

	if len(entries) == 0 || entries[0].Description == "" {
		return "", false
	}

	return entries[0].Description, true
}

// Normalize classifies an arbitrary value into a genre label. Non-string
// input yields Unknown. A string is stripped of diacritics, lowercased and
// trimmed, then matched against the alias table in order. Unmatched values
// that look corrupted (digits or corruptionChars) yield Unknown; anything
// else becomes a capitalized best-effort label, so callers must tolerate
// labels outside the closed taxonomy.
func Normalize(v any) string {
	s, ok := v.(string)
	if !ok {
		return Unknown
	}

	clean := strings.TrimSpace(strings.ToLower(stripDiacritics(s)))

	for _, a := range aliases {
		if strings.Contains(clean, a.fragment) {
			return a.label
		}
	}

	if looksCorrupted(clean) {
		return Unknown
	}

	return utils.Capitalize(clean)
}

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}

	return out
}

func looksCorrupted(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || strings.ContainsRune(corruptionChars, r) {
			return true
		}
	}

	return false
}
