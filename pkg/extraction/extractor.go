// Package extraction derives structured actionable facts from classified
// text: locations, people counts with status, needs, damage types, and time
// mentions. Location detection prefers a named-entity model and degrades to
// curated gazetteer/regex rules when the model is unavailable.
package extraction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/config"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability/metrics"
)

// PeopleCount is one "<number> <status>" match, e.g. (3, "trapped").
type PeopleCount struct {
	Count  int    `json:"count"`
	Status string `json:"status"`
}

// ActionableInfo is the structured record extracted from actionable text.
// Every field is present and empty (never nil) when no signal was found,
// so consumers need no missing-vs-empty special cases.
type ActionableInfo struct {
	Locations    []string      `json:"locations"`
	PeopleCounts []PeopleCount `json:"people_counts"`
	Needs        []string      `json:"needs"`
	DamageTypes  []string      `json:"damage_types"`
	TimeMentions []string      `json:"time_mentions"`

	// Degraded is true when location detection ran in gazetteer fallback
	// mode because no entity recognizer was available. Not an error:
	// extraction still runs, with reduced location recall.
	Degraded bool `json:"degraded,omitempty"`
}

func emptyInfo() ActionableInfo {
	return ActionableInfo{
		Locations:    []string{},
		PeopleCounts: []PeopleCount{},
		Needs:        []string{},
		DamageTypes:  []string{},
		TimeMentions: []string{},
	}
}

// entityLocationLabels are the span types treated as locations.
var entityLocationLabels = map[string]bool{"GPE": true, "LOC": true, "FAC": true}

// Extractor applies the actionable-label policy table plus the extraction
// rules. It is immutable after construction and safe for concurrent use.
type Extractor struct {
	actionable map[labels.Label]bool
	recognizer EntityRecognizer
	hasNER     bool

	peopleRes []*regexp.Regexp
	needs     map[string]bool
	damage    map[string]bool
	places    map[string]bool
}

// New builds an Extractor from config. recognizer may be nil, which puts
// location detection into the gazetteer fallback mode permanently; the
// capability is fixed here, at construction, so degraded behavior is
// deterministic and testable rather than probed per call.
func New(cfg config.ExtractionConfig, recognizer EntityRecognizer) (*Extractor, error) {
	actionable := make(map[labels.Label]bool, len(cfg.ActionableLabels))
	for _, name := range cfg.ActionableLabels {
		l, ok := labels.FromName(name)
		if !ok {
			return nil, fmt.Errorf("extraction: unknown actionable label %q", name)
		}
		actionable[l] = true
	}

	statusWords := mergeLower(defaultStatusWords, cfg.ExtraStatusWords)
	quoted := make([]string, len(statusWords))
	for i, w := range statusWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	statusAlt := strings.Join(quoted, "|")
	// Ordered: the "<n> people <status>" form first so "3 people trapped"
	// binds the count to the status across the filler word.
	peopleRes := []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+)\s+(?:people|persons|residents|victims|workers|children)\s+(` + statusAlt + `)\b`),
		regexp.MustCompile(`(?i)\b(\d+)\s+(` + statusAlt + `)\b`),
	}

	x := &Extractor{
		actionable: actionable,
		recognizer: recognizer,
		hasNER:     recognizer != nil,
		peopleRes:  peopleRes,
		needs:      toSet(mergeLower(defaultNeedsKeywords, cfg.ExtraNeedsKeywords)),
		damage:     toSet(mergeLower(defaultDamageKeywords, cfg.ExtraDamageKeywords)),
		places:     toSet(mergeLower(defaultPlaceWords, cfg.ExtraPlaceWords)),
	}
	metrics.SetEntityRecognizerLoaded(x.hasNER)
	return x, nil
}

// HasEntityRecognition reports whether an entity model backs location
// detection. Fixed at construction time.
func (x *Extractor) HasEntityRecognition() bool { return x.hasNER }

// Extract populates an ActionableInfo for text classified as label. Labels
// outside the configured actionable subset return an all-empty record with
// no extraction work done.
func (x *Extractor) Extract(text string, label labels.Label) ActionableInfo {
	if !x.actionable[label] {
		return emptyInfo()
	}

	info := emptyInfo()
	info.Locations, info.Degraded = x.extractLocations(text)
	info.PeopleCounts = x.extractPeopleCounts(text)
	info.Needs = x.matchKeywords(text, x.needs)
	info.DamageTypes = x.matchKeywords(text, x.damage)
	info.TimeMentions = extractTimeMentions(text)

	if info.Degraded {
		metrics.RecordExtractionFallback()
	}
	return info
}

// extractLocations runs the entity recognizer when available and falls back
// to gazetteer/regex heuristics when it is absent, fails, or finds nothing.
func (x *Extractor) extractLocations(text string) ([]string, bool) {
	degraded := !x.hasNER

	var locations []string
	if x.hasNER {
		entities, err := x.recognizer.Recognize(text)
		if err != nil {
			observability.Warnf("entity recognition failed, using rule-based fallback: %v", err)
			degraded = true
		} else {
			for _, ent := range entities {
				if entityLocationLabels[ent.Label] {
					locations = append(locations, ent.Text)
				}
			}
		}
	}

	if len(locations) == 0 {
		locations = fallbackLocations(text, x.places)
	}
	return dedupeSorted(locations), degraded
}

// fallbackLocations applies the rule-based heuristics: capitalized phrases
// after locational prepositions, "City, ST" pairs, numbered highways, and
// the curated place-word gazetteer.
func fallbackLocations(text string, places map[string]bool) []string {
	var locations []string
	for _, m := range prepositionLocationRe.FindAllStringSubmatch(text, -1) {
		locations = append(locations, m[1])
	}
	for _, m := range cityStateRe.FindAllStringSubmatch(text, -1) {
		locations = append(locations, m[1]+", "+m[2])
	}
	for _, m := range highwayRe.FindAllStringSubmatch(text, -1) {
		locations = append(locations, m[1])
	}
	for _, word := range wordRe.FindAllString(text, -1) {
		if places[strings.ToLower(word)] {
			locations = append(locations, word)
		}
	}
	return locations
}

// extractPeopleCounts applies the ordered people-count patterns. Spans
// consumed by an earlier pattern are masked so the looser pattern cannot
// re-match inside them; duplicate (count, status) pairs collapse, keeping
// first-appearance order.
func (x *Extractor) extractPeopleCounts(text string) []PeopleCount {
	counts := []PeopleCount{}
	seen := map[PeopleCount]bool{}
	remaining := text

	for _, re := range x.peopleRes {
		for _, m := range re.FindAllStringSubmatch(remaining, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			pair := PeopleCount{Count: n, Status: strings.ToLower(m[2])}
			if !seen[pair] {
				seen[pair] = true
				counts = append(counts, pair)
			}
		}
		remaining = re.ReplaceAllStringFunc(remaining, func(s string) string {
			return strings.Repeat(" ", len(s))
		})
	}
	return counts
}

// matchKeywords tests each word of text against vocab. A word may appear in
// several vocabularies at once; membership tests are independent.
func (x *Extractor) matchKeywords(text string, vocab map[string]bool) []string {
	var hits []string
	for _, word := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if vocab[word] {
			hits = append(hits, word)
		}
	}
	return dedupeSorted(hits)
}

func extractTimeMentions(text string) []string {
	var hits []string
	for _, re := range timePatterns {
		hits = append(hits, re.FindAllString(text, -1)...)
	}
	return dedupeSorted(hits)
}

// dedupeSorted removes duplicates by lowercased trimmed equality, keeping
// the first-seen spelling, and returns a sorted set. Always non-nil.
func dedupeSorted(values []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func mergeLower(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := map[string]bool{}
	for _, v := range append(append([]string{}, base...), extra...) {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
