package note

import "strings"

// categoryKeywords maps expense keywords to a category. Lookup is on
// lower-cased tokens; anything unmatched falls through to "Other".
var categoryKeywords = map[string]string{
	// transport
	"fuel":   "transport",
	"petrol": "transport",
	"diesel": "transport",
	"taxi":   "transport",
	"auto":   "transport",
	"bus":    "transport",
	"train":  "transport",

	// food
	"lunch":     "food",
	"dinner":    "food",
	"breakfast": "food",
	"food":      "food",
	"tea":       "food",
	"chai":      "food",
	"snacks":    "food",

	// utilities
	"electricity": "utilities",
	"internet":    "utilities",
	"recharge":    "utilities",
	"water":       "utilities",

	// rent
	"rent": "rent",

	// staff
	"salary": "salary",
	"wages":  "salary",

	// inventory
	"stock":    "inventory",
	"goods":    "inventory",
	"supplies": "inventory",
}

// defaultCategory is used when no keyword matches.
const defaultCategory = "Other"

// inferCategory returns the expense category implied by the note tokens.
func inferCategory(tokens []string) string {
	for _, tok := range tokens {
		if category, ok := categoryKeywords[tok]; ok {
			return category
		}
	}
	return defaultCategory
}

// InferCategory returns the expense category implied by free text. Used
// by collaborators outside the note parser, such as the bank statement
// importer.
func InferCategory(text string) string {
	return inferCategory(strings.Fields(strings.ToLower(text)))
}
