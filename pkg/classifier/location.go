package classifier

import (
	"strings"
)

// multiWordStates are the state names whose words are joined by the same
// hyphen that separates state from city. Matching against this list is the
// only way to tell "New-York-Buffalo" (New York / Buffalo) from
// "Ohio-Cleveland-Heights" (Ohio / Cleveland Heights).
// Sorted longest first so "District of Columbia" is tried before shorter names.
var multiWordStates = [][]string{
	{"district", "of", "columbia"},
	{"new", "hampshire"},
	{"new", "jersey"},
	{"new", "mexico"},
	{"new", "york"},
	{"north", "carolina"},
	{"north", "dakota"},
	{"rhode", "island"},
	{"south", "carolina"},
	{"south", "dakota"},
	{"west", "virginia"},
}

// splitLocation splits a "State-City" segment into state and city, with the
// hyphens inside each part turned into spaces. Case is kept as found.
// A segment with no city part returns an empty city.
func splitLocation(segment string) (state, city string) {
	tokens := strings.FieldsFunc(segment, func(r rune) bool { return r == '-' })
	if len(tokens) == 0 {
		return "", ""
	}

	n := stateTokenCount(tokens)
	state = strings.Join(tokens[:n], " ")
	city = strings.Join(tokens[n:], " ")
	return state, city
}

// stateTokenCount returns how many leading tokens make up the state name.
func stateTokenCount(tokens []string) int {
	for _, words := range multiWordStates {
		if len(tokens) < len(words) {
			continue
		}
		matched := true
		for i, w := range words {
			if !strings.EqualFold(tokens[i], w) {
				matched = false
				break
			}
		}
		if matched {
			return len(words)
		}
	}
	return 1
}
