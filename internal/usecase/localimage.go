package usecase

import (
	"fmt"
	"strings"
)

// imageCategories are the curated photo sets shipped with the frontend under
// /images/blog/. Each category has numbered files, e.g. teide-1.jpg.
var imageCategories = []string{
	"adeje", "anaga", "carneval", "dolphins", "eat", "elhierro",
	"garachico", "gomera", "hiking", "kidsactivity", "la-laguna",
	"lapalma", "loro-parque", "masca-valley", "mtb", "parapendio",
	"playa", "puerto", "quad", "santacruz", "siam-park", "teide",
	"villa", "vitigni",
}

type imageRule struct {
	keyword  string
	category string
}

// imageKeywords maps activity vocabulary, in several languages, to a photo
// category. Order matters: place names come before generic activity words so
// "Escursione al Teide" resolves to teide, not hiking.
var imageKeywords = []imageRule{
	{"teide", "teide"},
	{"anaga", "anaga"},
	{"masca", "masca-valley"},
	{"adeje", "adeje"},
	{"garachico", "garachico"},
	{"santa cruz", "santacruz"},
	{"puerto", "puerto"},
	{"laguna", "la-laguna"},
	{"gomera", "gomera"},
	{"palma", "lapalma"},
	{"hierro", "elhierro"},
	{"siam", "siam-park"},
	{"loro", "loro-parque"},

	{"volcano", "teide"},
	{"vulcano", "teide"},
	{"volcán", "teide"},
	{"whale", "dolphins"},
	{"balena", "dolphins"},
	{"ballena", "dolphins"},
	{"dolphin", "dolphins"},
	{"delfin", "dolphins"},
	{"delfín", "dolphins"},
	{"avvistamento", "dolphins"},
	{"catamaran", "dolphins"},
	{"waterpark", "siam-park"},
	{"parco acquatico", "siam-park"},
	{"water park", "siam-park"},
	{"zoo", "loro-parque"},
	{"pappagall", "loro-parque"},
	{"parapendio", "parapendio"},
	{"paraglid", "parapendio"},
	{"quad", "quad"},
	{"buggy", "quad"},
	{"mtb", "mtb"},
	{"mountain bike", "mtb"},
	{"bici", "mtb"},
	{"hiking", "hiking"},
	{"trekking", "hiking"},
	{"senderismo", "hiking"},
	{"escursion", "hiking"},
	{"carneval", "carneval"},
	{"carnival", "carneval"},
	{"carnaval", "carneval"},
	{"ristorante", "eat"},
	{"restaurant", "eat"},
	{"cibo", "eat"},
	{"cucina", "eat"},
	{"gastronom", "eat"},
	{"vino", "vitigni"},
	{"wine", "vitigni"},
	{"vigna", "vitigni"},
	{"vitigni", "vitigni"},
	{"spiaggia", "playa"},
	{"beach", "playa"},
	{"playa", "playa"},
	{"surf", "playa"},
	{"bambini", "kidsactivity"},
	{"famiglia", "kidsactivity"},
	{"family", "kidsactivity"},
	{"kids", "kidsactivity"},
	{"niños", "kidsactivity"},
	{"hotel", "villa"},
	{"villa", "villa"},
	{"alloggio", "villa"},
	{"apartment", "villa"},
}

// categoryFallbacks picks a photo set from the activity category when no
// keyword matched.
var categoryFallbacks = map[string]string{
	"natura":       "anaga",
	"nature":       "anaga",
	"naturaleza":   "anaga",
	"avventura":    "quad",
	"adventure":    "quad",
	"aventura":     "quad",
	"acqua":        "playa",
	"water":        "playa",
	"agua":         "playa",
	"mare":         "playa",
	"cultura":      "la-laguna",
	"culture":      "la-laguna",
	"food":         "eat",
	"relax":        "playa",
	"divertimento": "siam-park",
	"mirador":      "teide",
	"tramonto":     "teide",
	"famiglia":     "kidsactivity",
	"family":       "kidsactivity",
}

// PickLocalImage chooses a bundled photo for an activity by scanning its
// title, then its location, for known keywords. Falls back to the activity
// category, and finally to a Teide shot, the island's default postcard.
func PickLocalImage(title, category, location string) string {
	for _, haystack := range []string{strings.ToLower(title), strings.ToLower(location)} {
		if haystack == "" {
			continue
		}
		for _, rule := range imageKeywords {
			if strings.Contains(haystack, rule.keyword) {
				return localImagePath(rule.category)
			}
		}
	}

	if cat, ok := categoryFallbacks[strings.ToLower(category)]; ok {
		return localImagePath(cat)
	}

	return localImagePath("teide")
}

// IsImageCategory reports whether name is one of the bundled photo sets.
func IsImageCategory(name string) bool {
	for _, c := range imageCategories {
		if c == name {
			return true
		}
	}
	return false
}

func localImagePath(category string) string {
	return fmt.Sprintf("/images/blog/%s-1.jpg", category)
}
