package swayapi

import "strings"

// stateNameByCode maps USPS state codes to display names. The graph backend
// has no formal jurisdiction registrations, so free-text profile locations
// are reduced to states as the closest available approximation.
var stateNameByCode = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// stateCodeByName is the reverse lookup, keyed by lowercased display name.
var stateCodeByName = func() map[string]string {
	m := make(map[string]string, len(stateNameByCode))
	for code, name := range stateNameByCode {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// ExtractState pulls a US state code out of a free-text location such as
// "Austin, TX", "Texas" or "Portland, Oregon, USA". Tokens are examined
// right to left so the most specific trailing segment wins.
func ExtractState(location string) (string, bool) {
	tokens := strings.Split(location, ",")
	for i := len(tokens) - 1; i >= 0; i-- {
		token := strings.TrimSpace(tokens[i])
		if token == "" {
			continue
		}
		upper := strings.ToUpper(token)
		if upper == "USA" || upper == "US" || upper == "UNITED STATES" {
			continue
		}
		if len(upper) == 2 {
			if _, ok := stateNameByCode[upper]; ok {
				return upper, true
			}
			continue
		}
		if code, ok := stateCodeByName[strings.ToLower(token)]; ok {
			return code, true
		}
	}
	return "", false
}

// StateName returns the display name for a state code.
func StateName(code string) string {
	return stateNameByCode[code]
}
