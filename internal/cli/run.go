package cli

import (
	"github.com/spf13/cobra"

	"github.com/eulerecho/kabooom"
	"github.com/eulerecho/kabooom/internal/render"
)

var showFrames bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run interception searches and print the results",
	Long: `Build --num-iterations scenarios from the seed and search each one in turn.

With --show every time step of the interception is printed as a text frame.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		reports := make([]runReport, 0, len(s.scenarios))
		for i, built := range s.scenarios {
			result, err := kabooom.Search(built.Grid, built.Trajectory, built.Start, s.options...)
			if err != nil && !searchFailed(err) {
				return err
			}
			report := newRunReport(i, built, result, err)
			reports = append(reports, report)
			if jsonOutput {
				continue
			}

			printReport(out, report)
			if showFrames {
				if err := render.Text(out, built.Grid, built.Trajectory, result.Path); err != nil {
					return err
				}
			}
		}

		if jsonOutput {
			return outputJSON(out, struct {
				Seed int64       `json:"seed"`
				Runs []runReport `json:"runs"`
			}{Seed: s.seed, Runs: reports})
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&showFrames, "show", false, "Print every simulation frame as text")
}
