package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/attribution"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/cli"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/pipeline"
)

// labelColors approximates the dashboard palette with terminal colors.
var labelColors = map[labels.Label]*color.Color{
	labels.AffectedIndividuals:            color.New(color.FgRed, color.Bold),
	labels.InfrastructureAndUtilityDamage: color.New(color.FgYellow, color.Bold),
	labels.NotHumanitarian:                color.New(color.FgWhite),
	labels.OtherRelevantInformation:       color.New(color.FgBlue, color.Bold),
	labels.RescueVolunteeringOrDonation:   color.New(color.FgGreen, color.Bold),
}

func labelColor(l labels.Label) *color.Color {
	if c, ok := labelColors[l]; ok {
		return c
	}
	return color.New(color.FgWhite)
}

// renderRecord prints one classification record in human-readable form.
func renderRecord(record pipeline.Record, topTokens int) {
	result := record.Result

	fmt.Printf("Prediction: %s (%.1f%%)\n",
		labelColor(result.Label).Sprint(result.Label.DisplayName()),
		result.Confidence[int(result.Label)]*100)

	rows := make([][]string, 0, labels.Count())
	for _, l := range labels.All() {
		marker := " "
		if l == result.Label {
			marker = ">"
		}
		rows = append(rows, []string{
			marker,
			l.DisplayName(),
			fmt.Sprintf("%.4f", result.Confidence[int(l)]),
			confidenceBar(result.Confidence[int(l)]),
		})
	}
	cli.PrintTable([]string{"", "Label", "Confidence", ""}, rows)

	if len(record.TokenImportance) > 0 && topTokens > 0 {
		fmt.Println()
		cli.Info("Most influential tokens:")
		for _, score := range topScores(record.TokenImportance, topTokens) {
			fmt.Printf("  %-20s %.3f %s\n", score.Token, score.Normalized, confidenceBar(score.Normalized))
		}
	}

	renderActionable(record)
	fmt.Println()
}

func renderActionable(record pipeline.Record) {
	info := record.Actionable
	if len(info.Locations) == 0 && len(info.PeopleCounts) == 0 && len(info.Needs) == 0 &&
		len(info.DamageTypes) == 0 && len(info.TimeMentions) == 0 {
		return
	}

	fmt.Println()
	cli.Info("Actionable information:")
	if len(info.Locations) > 0 {
		fmt.Printf("  Locations:     %s\n", strings.Join(info.Locations, ", "))
	}
	if len(info.PeopleCounts) > 0 {
		parts := make([]string, 0, len(info.PeopleCounts))
		for _, pc := range info.PeopleCounts {
			parts = append(parts, fmt.Sprintf("%d %s", pc.Count, pc.Status))
		}
		fmt.Printf("  People:        %s\n", strings.Join(parts, ", "))
	}
	if len(info.Needs) > 0 {
		fmt.Printf("  Needs:         %s\n", strings.Join(info.Needs, ", "))
	}
	if len(info.DamageTypes) > 0 {
		fmt.Printf("  Damage:        %s\n", strings.Join(info.DamageTypes, ", "))
	}
	if len(info.TimeMentions) > 0 {
		fmt.Printf("  Time mentions: %s\n", strings.Join(info.TimeMentions, ", "))
	}
	if info.Degraded {
		cli.Warning("  (locations from heuristic rules, entity model unavailable)")
	}
}

// topScores returns the k highest-scoring tokens, ties kept in input order.
func topScores(scores []attribution.TokenScore, k int) []attribution.TokenScore {
	sorted := make([]attribution.TokenScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Normalized > sorted[j].Normalized
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

func confidenceBar(v float64) string {
	const width = 20
	filled := int(v*width + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
