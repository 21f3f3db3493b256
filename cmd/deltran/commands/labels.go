package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/cli"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
)

// NewLabelsCmd creates the labels command
func NewLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List the classification labels",
		Long:  `Display the label set, its dashboard colors, and which labels trigger actionable extraction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			actionable, err := cfg.ActionableSet()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, labels.Count())
			for _, l := range labels.All() {
				mark := ""
				if actionable[l] {
					mark = "yes"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", int(l)),
					l.Name(),
					l.DisplayName(),
					l.Color(),
					mark,
				})
			}
			cli.PrintTable([]string{"ID", "Name", "Display", "Color", "Actionable"}, rows)
			return nil
		},
	}
}
