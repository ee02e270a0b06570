package readiness

import "strings"

// unknownCountryFlag is rendered for destinations missing from the table.
const unknownCountryFlag = "🌍"

// countryFlags maps lowercase destination names to flag emoji.
var countryFlags = map[string]string{
	"united states":  "🇺🇸",
	"united kingdom": "🇬🇧",
	"canada":         "🇨🇦",
	"australia":      "🇦🇺",
	"new zealand":    "🇳🇿",
	"germany":        "🇩🇪",
	"france":         "🇫🇷",
	"netherlands":    "🇳🇱",
	"ireland":        "🇮🇪",
	"sweden":         "🇸🇪",
	"norway":         "🇳🇴",
	"denmark":        "🇩🇰",
	"finland":        "🇫🇮",
	"switzerland":    "🇨🇭",
	"austria":        "🇦🇹",
	"italy":          "🇮🇹",
	"spain":          "🇪🇸",
	"portugal":       "🇵🇹",
	"japan":          "🇯🇵",
	"south korea":    "🇰🇷",
	"singapore":      "🇸🇬",
	"malaysia":       "🇲🇾",
	"china":          "🇨🇳",
	"india":          "🇮🇳",
	"uae":            "🇦🇪",
}

// countryAliases maps common short spellings to table keys.
var countryAliases = map[string]string{
	"usa":                  "united states",
	"us":                   "united states",
	"america":              "united states",
	"uk":                   "united kingdom",
	"britain":              "united kingdom",
	"great britain":        "united kingdom",
	"england":              "united kingdom",
	"korea":                "south korea",
	"holland":              "netherlands",
	"united arab emirates": "uae",
}

// countryFlag returns the emoji flag for a destination name, matching
// case-insensitively with alias support. Unknown names get the globe
// glyph; lookup never fails.
func countryFlag(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := countryAliases[key]; ok {
		key = alias
	}
	if flag, ok := countryFlags[key]; ok {
		return flag
	}
	return unknownCountryFlag
}
