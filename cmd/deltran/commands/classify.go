package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/cli"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/inference"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/pipeline"
)

// NewClassifyCmd creates the classify command
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify a tweet and extract actionable information",
		Long: `Run one text through the full pipeline: prediction, token importance,
and actionable extraction. With --interactive (or no argument on a
terminal) an interactive prompt is started instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive, _ := cmd.Flags().GetBool("interactive")
			asJSON, _ := cmd.Flags().GetBool("json")
			topTokens, _ := cmd.Flags().GetInt("top-tokens")

			p, _, err := loadPipeline(cmd)
			if err != nil {
				return err
			}

			if interactive || (len(args) == 0 && cli.IsTerminal()) {
				return runInteractive(p, asJSON, topTokens)
			}
			if len(args) == 0 {
				return fmt.Errorf("no text given; pass it as an argument or use --interactive")
			}

			record, err := p.Run(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return cli.PrintJSON(record)
			}
			renderRecord(record, topTokens)
			return nil
		},
	}

	cmd.Flags().BoolP("interactive", "i", false, "Start an interactive prompt")
	cmd.Flags().Bool("json", false, "Print the full record as JSON")
	cmd.Flags().Int("top-tokens", 5, "Number of influential tokens to show")

	return cmd
}

func runInteractive(p *pipeline.Pipeline, asJSON bool, topTokens int) error {
	cli.Info("Enter a tweet per line. Type 'quit' or press Ctrl-D to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("deltran> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		record, err := p.Run(line)
		if err != nil {
			if errors.Is(err, inference.ErrEmptyInput) {
				continue
			}
			cli.Error(fmt.Sprintf("classification failed: %v", err))
			continue
		}
		if asJSON {
			if err := cli.PrintJSON(record); err != nil {
				return err
			}
			continue
		}
		renderRecord(record, topTokens)
	}
}
