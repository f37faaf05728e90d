package schema

import "strings"

// knownSingulars covers irregular plurals the suffix rules get wrong.
var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"analysis":  "analysis",
	"species":   "species",
	"news":      "news",
	"goods":     "goods",
	"children":  "child",
	"people":    "person",
	"men":       "man",
	"women":     "woman",
	"data":      "data",
	"media":     "media",
	"addresses": "address",
}

// singularize names the element model of an array property, e.g. Users -> User.
func singularize(plural string) string {
	if singular, ok := knownSingulars[strings.ToLower(plural)]; ok {
		// Preserve original casing if the first letter was capitalized
		if plural != "" && strings.ToUpper(plural[:1]) == plural[:1] && singular != "" {
			return strings.ToUpper(singular[:1]) + singular[1:]
		}
		return singular
	}

	lower := strings.ToLower(plural)

	if strings.HasSuffix(lower, "ies") && len(lower) > 3 {
		return plural[:len(plural)-3] + "y"
	}

	// Avoid removing 's' from words like 'class', 'status', 'basis'
	if strings.HasSuffix(lower, "ss") ||
		strings.HasSuffix(lower, "us") ||
		strings.HasSuffix(lower, "is") {
		return plural
	}

	if strings.HasSuffix(lower, "s") && len(lower) > 1 {
		return plural[:len(plural)-1]
	}

	return plural
}
