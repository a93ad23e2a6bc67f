package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eulerecho/kabooom"
)

var exploreLimit int

// stepRecord is one expansion as emitted by explore.
type stepRecord struct {
	Step     int            `json:"step"`
	Time     int            `json:"time"`
	Ego      kabooom.Cell   `json:"ego"`
	Target   kabooom.Cell   `json:"target"`
	Frontier int            `json:"frontier"`
	Visited  int            `json:"visited"`
	Done     bool           `json:"done"`
	Found    bool           `json:"found"`
	Path     []kabooom.Cell `json:"path,omitempty"`
}

func newStepRecord(snapshot kabooom.StepSnapshot) stepRecord {
	return stepRecord{
		Step:     snapshot.StepIndex,
		Time:     snapshot.Current.Time,
		Ego:      snapshot.Current.Ego,
		Target:   snapshot.Target,
		Frontier: snapshot.FrontierSize,
		Visited:  snapshot.VisitedSize,
		Done:     snapshot.Done,
		Found:    snapshot.Found,
		Path:     snapshot.Path,
	}
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Trace the search one expansion at a time",
	Long: `Build the first scenario from the seed and print every state the search
expands, with frontier and visited sizes. With --json each step is one JSON
object per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		built := s.scenarios[0]

		stepper, err := kabooom.NewStepper(built.Grid, built.Trajectory, built.Start, s.options...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		encoder := json.NewEncoder(out)
		if !jsonOutput {
			printSection(out, fmt.Sprintf("Exploring from %s (%s, seed %d)", built.Start, runConfig.Algorithm, s.seed))
		}
		for !stepper.Done() {
			if exploreLimit > 0 {
				if snapshotCount := stepper.Steps(); snapshotCount >= exploreLimit {
					if !jsonOutput {
						printWarning(out, fmt.Sprintf("Stopped after %d steps", snapshotCount))
					}
					return nil
				}
			}
			snapshot, err := stepper.Step()
			if err != nil && !searchFailed(err) {
				return err
			}
			record := newStepRecord(snapshot)
			if jsonOutput {
				if err := encoder.Encode(record); err != nil {
					return err
				}
				continue
			}
			switch {
			case record.Found:
				printSuccess(out, fmt.Sprintf("step %d: intercepted at %s, t=%d, %d moves",
					record.Step, record.Ego, record.Time, len(record.Path)-1))
			case record.Done && err != nil:
				printWarning(out, fmt.Sprintf("step %d: %v", record.Step, err))
			case record.Done:
				printWarning(out, fmt.Sprintf("step %d: No interception possible!", record.Step))
			default:
				fmt.Fprintf(out, "  step %-6d t=%-4d ego %-10s target %-10s frontier %-6d visited %d\n",
					record.Step, record.Time, record.Ego, record.Target, record.Frontier, record.Visited)
			}
		}
		return nil
	},
}

func init() {
	exploreCmd.Flags().IntVar(&exploreLimit, "max-steps", 0, "Stop after this many steps (0 = until done)")
}
