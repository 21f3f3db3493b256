package extraction

import "regexp"

// Default vocabularies for the rule-based extractors. Config can extend
// them, never replace them: the curated lists are the tested baseline.

var defaultNeedsKeywords = []string{
	"food", "water", "medicine", "medical", "shelter", "blankets", "clothes",
	"rescue", "ambulance", "evacuation", "supplies", "aid", "donation",
}

var defaultDamageKeywords = []string{
	"bridge", "road", "roads", "highway", "power", "electricity",
	"collapse", "collapsed", "flooded", "floods", "fire", "wildfire",
	"damaged", "destroyed", "outage", "blocked", "landslide", "rubble",
	"wreckage", "burned",
}

// defaultStatusWords is the people-count status vocabulary, matched after a
// number ("3 trapped", "12 people injured").
var defaultStatusWords = []string{
	"injured", "dead", "killed", "missing", "trapped", "wounded",
	"rescued", "evacuated",
}

// defaultPlaceWords is the curated gazetteer used when no entity model is
// available: common place-reference words that appear in disaster reports
// without capitalization.
var defaultPlaceWords = []string{
	"downtown", "uptown", "midtown", "riverside", "seafront", "harbor",
	"airport", "hospital", "school", "campus", "village", "suburb",
	"suburbs", "coast", "shoreline",
}

// Fallback location heuristics: capitalized phrases after a locational
// preposition, "City, ST" pairs, and numbered highways.
var (
	prepositionLocationRe = regexp.MustCompile(
		`\b(?:in|near|at|around|from|on|outside|inside|within|across|to)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`)
	cityStateRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]+),\s*([A-Z]{2})\b`)
	highwayRe   = regexp.MustCompile(`\b(Highway\s+\d+|Route\s+\d+|I-\d+)\b`)
)

// timePatterns match relative-time phrases and date-like tokens. Matches
// are reported as literal substrings, never normalized to calendar values.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bnow\b`),
	regexp.MustCompile(`(?i)\btoday\b`),
	regexp.MustCompile(`(?i)\byesterday\b`),
	regexp.MustCompile(`(?i)\btonight\b`),
	regexp.MustCompile(`(?i)\bthis\s+morning\b`),
	regexp.MustCompile(`(?i)\bthis\s+afternoon\b`),
	regexp.MustCompile(`(?i)\bthis\s+evening\b`),
	regexp.MustCompile(`(?i)\b\d+\s*(?:mins?|minutes?|hrs?|hours?|days?|weeks?)\s*ago\b`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
}

var wordRe = regexp.MustCompile(`[a-zA-Z]+`)
