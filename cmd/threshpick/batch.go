package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/threshpick/internal/loader"
	"github.com/verte-zerg/threshpick/internal/selector"
)

type batchResult struct {
	path      string
	threshold float64
	found     bool
	err       error
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Pick thresholds for several inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatchCmd,
	}
	cmd.Flags().IntVar(&batchJobs, "jobs", defaultJobs, "number of inputs evaluated in parallel")
	return cmd
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadSelectConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Jobs <= 0 {
		return fmt.Errorf("--jobs must be > 0")
	}
	format, _ := loader.ParseFormat(cfg.Format)
	policy := selector.Policy{MinRecall: cfg.MinRecall}

	results := make([]batchResult, len(args))
	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for i, path := range args {
		g.Go(func() error {
			results[i] = evaluateFile(path, format, policy)
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		var line string
		switch {
		case r.err != nil:
			failed++
			logErrf("%s: %v\n", r.path, r.err)
			line = fmt.Sprintf("%s: error", r.path)
		case r.found:
			line = fmt.Sprintf("%s: %s", r.path, strconv.FormatFloat(r.threshold, 'f', -1, 64))
		default:
			line = fmt.Sprintf("%s: none", r.path)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be loaded", failed, len(results))
	}
	return nil
}

func evaluateFile(path string, format loader.Format, policy selector.Policy) batchResult {
	data, err := loader.Load(path, format)
	if err != nil {
		return batchResult{path: path, err: err}
	}
	sel := selector.Select(data, policy)
	logSkipped(path, sel)
	best, ok := sel.Best()
	return batchResult{path: path, threshold: best.Threshold, found: ok}
}
