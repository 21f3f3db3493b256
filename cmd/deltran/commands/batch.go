package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/cli"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/pipeline"
)

// batchLine is one JSON-lines output row. Exactly one of Record and Error
// is set.
type batchLine struct {
	Line   int              `json:"line"`
	Record *pipeline.Record `json:"record,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Classify a file of tweets, one per line",
		Long: `Read one tweet per line from the file and write one JSON record per
line to stdout, in input order. Blank lines are skipped. A line that
fails carries an error field instead of a record; the rest of the file
still runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			if workers < 1 {
				return fmt.Errorf("--workers must be at least 1, got %d", workers)
			}

			p, _, err := loadPipeline(cmd)
			if err != nil {
				return err
			}
			return runBatch(p, args[0], workers)
		},
	}

	cmd.Flags().IntP("workers", "w", 4, "Number of concurrent classifications")

	return cmd
}

func runBatch(p *pipeline.Pipeline, path string, workers int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	type job struct {
		line int
		text string
	}
	var jobs []job
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		jobs = append(jobs, job{line: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	results := make([]batchLine, len(jobs))
	var failed int
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(workers)
	for i, j := range jobs {
		g.Go(func() error {
			record, err := p.Run(j.text)
			if err != nil {
				observability.Warnf("line %d failed: %v", j.line, err)
				mu.Lock()
				failed++
				mu.Unlock()
				results[i] = batchLine{Line: j.line, Error: err.Error()}
				return nil
			}
			results[i] = batchLine{Line: j.line, Record: &record}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, line := range results {
		if err := encoder.Encode(line); err != nil {
			return err
		}
	}

	if failed > 0 {
		cli.Warning(fmt.Sprintf("%d of %d lines failed", failed, len(jobs)))
	} else {
		cli.Success(fmt.Sprintf("classified %d lines", len(jobs)))
	}
	return nil
}
