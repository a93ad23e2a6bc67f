package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/eulerecho/kabooom"
	"github.com/eulerecho/kabooom/internal/scenario"
)

// session is everything a simulation command needs for one invocation.
type session struct {
	seed      int64
	scenarios []scenario.Scenario
	options   []kabooom.Option
	logger    *slog.Logger
}

// newSession builds the scenarios and search options from the global config.
func newSession(cmd *cobra.Command) (*session, error) {
	options, err := runConfig.SearchOptions()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)
	options = append(options, kabooom.WithLogger(logger))

	seed := runConfig.ResolveSeed(time.Now())
	scenarios, err := scenario.BuildAll(runConfig, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("failed to build scenarios: %w", err)
	}
	logger.Debug("scenarios built", slog.Int64("seed", seed), slog.Int("count", len(scenarios)))

	return &session{seed: seed, scenarios: scenarios, options: options, logger: logger}, nil
}

// newLogger returns a text logger on w; Debug is enabled only when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runReport is the per-iteration summary printed by run and batch.
type runReport struct {
	Iteration     int            `json:"iteration"`
	Algorithm     string         `json:"algorithm"`
	Start         kabooom.Cell   `json:"start"`
	Horizon       int            `json:"horizon"`
	Found         bool           `json:"found"`
	Moves         int            `json:"moves"`
	InterceptTime int            `json:"intercept_time"`
	Cost          float64        `json:"cost"`
	Expanded      int            `json:"expanded"`
	Path          []kabooom.Cell `json:"path,omitempty"`
	Error         string         `json:"error,omitempty"`

	noInterception bool
}

func newRunReport(iteration int, built scenario.Scenario, result kabooom.Result, err error) runReport {
	report := runReport{
		Iteration: iteration,
		Algorithm: runConfig.Algorithm,
		Start:     built.Start,
		Horizon:   built.Trajectory.Len(),
		Found:     result.Found,
		Expanded:  result.ExpandedNodes,
	}
	if err != nil {
		report.Error = err.Error()
		report.noInterception = errors.Is(err, kabooom.ErrNoInterception)
		return report
	}
	report.Moves = len(result.Path) - 1
	report.InterceptTime = result.InterceptTime
	report.Cost = result.TotalCost
	report.Path = result.Path
	return report
}

// printReport writes the human-readable form of report.
func printReport(w io.Writer, report runReport) {
	printSection(w, fmt.Sprintf("Run %d (%s)", report.Iteration+1, report.Algorithm))
	printLabelValue(w, "Start", report.Start)
	printLabelValue(w, "Horizon", report.Horizon)
	printLabelValue(w, "Expanded", report.Expanded)
	switch {
	case report.Found:
		printLabelValue(w, "Moves", report.Moves)
		printLabelValue(w, "Cost", report.Cost)
		printSuccess(w, fmt.Sprintf("Intercepted the target at time step %d", report.InterceptTime))
	case report.Error != "" && !report.noInterception:
		printWarning(w, report.Error)
	default:
		printWarning(w, "No interception possible!")
	}
}

// searchFailed reports whether err is a per-run outcome rather than a command failure.
func searchFailed(err error) bool {
	return errors.Is(err, kabooom.ErrNoInterception) ||
		errors.Is(err, kabooom.ErrStateLimit) ||
		errors.Is(err, kabooom.ErrInvalidStart) ||
		errors.Is(err, kabooom.ErrInvalidTrajectory)
}
