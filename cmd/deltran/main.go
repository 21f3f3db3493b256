package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/cmd/deltran/commands"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if _, err := observability.InitLoggerFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:   "deltran",
		Short: "Disaster tweet classification CLI",
		Long: `deltran classifies short crisis-related texts into five humanitarian
categories and, for actionable categories, extracts locations, people
counts, needs, damage types, and time mentions.

Common workflows:
  deltran classify "3 people trapped in downtown, need water"
  deltran classify --interactive
  deltran batch tweets.txt
  deltran labels

For detailed help on any command, use:
  deltran <command> --help`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(commands.NewClassifyCmd())
	rootCmd.AddCommand(commands.NewBatchCmd())
	rootCmd.AddCommand(commands.NewLabelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
