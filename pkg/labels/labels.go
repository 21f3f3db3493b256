// Package labels defines the fixed five-category humanitarian label set the
// classifier was trained on. Label ids are dense 0..4 and match the class
// indices of the fine-tuned classification head; the set never changes at
// runtime.
package labels

import "fmt"

// Label is a humanitarian category id.
type Label int

const (
	AffectedIndividuals Label = iota
	InfrastructureAndUtilityDamage
	NotHumanitarian
	OtherRelevantInformation
	RescueVolunteeringOrDonation

	numLabels
)

type labelMeta struct {
	name        string
	displayName string
	color       string
}

// Display colors follow the dashboard convention: red for urgent, orange
// for important, gray for irrelevant, blue for informational, green for
// actionable.
var metadata = [numLabels]labelMeta{
	AffectedIndividuals:            {"affected_individuals", "Affected Individuals", "#FF6B6B"},
	InfrastructureAndUtilityDamage: {"infrastructure_and_utility_damage", "Infrastructure Damage", "#FFA500"},
	NotHumanitarian:                {"not_humanitarian", "Not Humanitarian", "#95A5A6"},
	OtherRelevantInformation:       {"other_relevant_information", "Other Information", "#3498DB"},
	RescueVolunteeringOrDonation:   {"rescue_volunteering_or_donation", "Rescue/Donation", "#2ECC71"},
}

// Count returns the number of labels in the set.
func Count() int { return int(numLabels) }

// Valid reports whether l is a member of the label set.
func (l Label) Valid() bool { return l >= 0 && l < numLabels }

// Name returns the canonical machine name of the label.
func (l Label) Name() string {
	if !l.Valid() {
		return fmt.Sprintf("invalid_label_%d", int(l))
	}
	return metadata[l].name
}

// DisplayName returns the user-facing name of the label.
func (l Label) DisplayName() string {
	if !l.Valid() {
		return l.Name()
	}
	return metadata[l].displayName
}

// Color returns the hex display color of the label.
func (l Label) Color() string {
	if !l.Valid() {
		return "#000000"
	}
	return metadata[l].color
}

func (l Label) String() string { return l.Name() }

// FromIndex converts a class index into a Label.
func FromIndex(i int) (Label, bool) {
	l := Label(i)
	return l, l.Valid()
}

// FromName resolves a canonical machine name into a Label.
func FromName(name string) (Label, bool) {
	for l := Label(0); l < numLabels; l++ {
		if metadata[l].name == name {
			return l, true
		}
	}
	return 0, false
}

// All returns the labels in id order.
func All() []Label {
	all := make([]Label, numLabels)
	for i := range all {
		all[i] = Label(i)
	}
	return all
}
