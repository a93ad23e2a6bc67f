package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eulerecho/kabooom"
)

// batchSummary aggregates a batch of runs.
type batchSummary struct {
	Seed         int64       `json:"seed"`
	Runs         int         `json:"runs"`
	Intercepted  int         `json:"intercepted"`
	MeanMoves    float64     `json:"mean_moves"`
	MeanExpanded float64     `json:"mean_expanded"`
	Reports      []runReport `json:"reports"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run interception searches concurrently and summarize them",
	Long: `Build --num-iterations scenarios and search them on --workers goroutines.
Each search owns its map and trajectory; only the summary is shared.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		jobs := make([]kabooom.Job, len(s.scenarios))
		for i, built := range s.scenarios {
			jobs[i] = built.Job()
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		outcomes, err := kabooom.Batch(ctx, jobs, s.options...)
		if err != nil {
			return err
		}

		summary := batchSummary{Seed: s.seed, Runs: len(outcomes)}
		totalMoves, totalExpanded := 0, 0
		for _, outcome := range outcomes {
			if outcome.Err != nil && !searchFailed(outcome.Err) {
				return outcome.Err
			}
			report := newRunReport(outcome.Index, s.scenarios[outcome.Index], outcome.Result, outcome.Err)
			report.Path = nil
			summary.Reports = append(summary.Reports, report)
			totalExpanded += report.Expanded
			if report.Found {
				summary.Intercepted++
				totalMoves += report.Moves
			}
		}
		summary.MeanExpanded = float64(totalExpanded) / float64(summary.Runs)
		if summary.Intercepted > 0 {
			summary.MeanMoves = float64(totalMoves) / float64(summary.Intercepted)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, summary)
		}

		printSection(out, fmt.Sprintf("Batch of %d runs (%s, seed %d)", summary.Runs, runConfig.Algorithm, summary.Seed))
		for _, report := range summary.Reports {
			status := "no interception"
			if report.Found {
				status = fmt.Sprintf("%d moves", report.Moves)
			} else if report.Error != "" && !report.noInterception {
				status = report.Error
			}
			fmt.Fprintf(out, "  %3d  start %-10s expanded %-8d %s\n", report.Iteration+1, report.Start, report.Expanded, status)
		}
		printLabelValue(out, "Intercepted", fmt.Sprintf("%d/%d", summary.Intercepted, summary.Runs))
		printLabelValue(out, "Mean moves", fmt.Sprintf("%.2f", summary.MeanMoves))
		printLabelValue(out, "Mean expanded", fmt.Sprintf("%.1f", summary.MeanExpanded))
		return nil
	},
}
