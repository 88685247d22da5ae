// Package main provides the CLI entrypoint for threshpick.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/threshpick/internal/config"
	"github.com/verte-zerg/threshpick/internal/loader"
	"github.com/verte-zerg/threshpick/internal/model"
	"github.com/verte-zerg/threshpick/internal/selector"
	"github.com/verte-zerg/threshpick/internal/stats"
)

const (
	defaultFormat = "auto"
	defaultJobs   = 4
	plotTitle     = "Precision / recall by threshold"
)

var (
	selectMinRecall float64
	selectFormat    string
	selectTable     bool
	selectPlot      bool
	selectTop       int

	batchJobs int

	debugLogging bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "threshpick <file>",
		Short: "Pick a classification threshold with recall >= 0.9 and maximal precision",
		Long: `threshpick reads a JSON or YAML document mapping thresholds to confusion-matrix
counts (tp, fn, fp, tn) and reports the threshold with the highest precision
among those whose recall reaches the floor. Precision ties go to the higher
threshold. Use "-" to read from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSelectCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Float64Var(&selectMinRecall, "min-recall", selector.DefaultMinRecall, "minimum recall for a candidate threshold (0-1)")
	rootCmd.PersistentFlags().StringVar(&selectFormat, "format", defaultFormat, "input format: auto, json or yaml")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	rootCmd.Flags().BoolVar(&selectTable, "table", false, "print every threshold with its counts and outcome")
	rootCmd.Flags().BoolVar(&selectPlot, "plot", false, "plot precision and recall against threshold")
	rootCmd.Flags().IntVar(&selectTop, "top", 0, "print the top N candidates")

	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadSelectConfig(cmd *cobra.Command) (model.SelectConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.SelectConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "min-recall", &selectMinRecall, fileCfg.Select.MinRecall)
	applyStringConfig(cmd, "format", &selectFormat, fileCfg.Select.Format)
	applyBoolConfig(cmd, "table", &selectTable, fileCfg.Select.Table)
	applyBoolConfig(cmd, "plot", &selectPlot, fileCfg.Select.Plot)
	applyIntConfig(cmd, "jobs", &batchJobs, fileCfg.Select.Jobs)

	cfg := model.SelectConfig{
		MinRecall: selectMinRecall,
		Format:    selectFormat,
		Table:     selectTable,
		Plot:      selectPlot,
		Jobs:      batchJobs,
	}
	if err := validateConfig(cfg); err != nil {
		return model.SelectConfig{}, err
	}
	return cfg, nil
}

func runSelectCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadSelectConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := loader.ParseFormat(cfg.Format)

	data, err := loader.Load(args[0], format)
	if err != nil {
		return err
	}

	sel := selector.Select(data, selector.Policy{MinRecall: cfg.MinRecall})
	logSkipped(args[0], sel)
	report := stats.BuildReport(sel)

	out := cmd.OutOrStdout()
	if cfg.Table {
		if err := writeTableSection(out, report); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if selectTop > 0 {
		if err := stats.WriteCandidates(out, report, selectTop); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if cfg.Plot {
		if err := stats.PlotCurves(out, plotTitle, report.Curves(), 0, 0); err != nil {
			return fmt.Errorf("failed to write plot: %w", err)
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := stats.WriteResult(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeTableSection(w io.Writer, report stats.Report) error {
	if err := stats.WriteSummary(w, report); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := stats.WriteTable(w, report); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func logSkipped(source string, sel selector.Selection) {
	for _, e := range sel.Skipped() {
		attrs := []any{"source", source, "key", e.Key, "reason", e.Reason.String()}
		if e.Field != "" {
			attrs = append(attrs, "field", e.Field)
		}
		slog.Debug("skipped threshold entry", attrs...)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

// flagChanged also reports false for flags the command does not define.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# threshpick configuration
# Uncomment a value to enable it. CLI flags override config values.

[select]
# min-recall = %.2f       # Minimum recall for a candidate threshold (0-1)
# format = %q         # Input format: auto, json or yaml
# table = false           # Print every threshold with its counts and outcome
# plot = false            # Plot precision and recall against threshold
# jobs = %d                # Parallel inputs for the batch command
`,
		selector.DefaultMinRecall,
		defaultFormat,
		defaultJobs,
	)
}

func validateConfig(cfg model.SelectConfig) error {
	if err := (selector.Policy{MinRecall: cfg.MinRecall}).Validate(); err != nil {
		return fmt.Errorf("--min-recall: %w", err)
	}
	if _, err := loader.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("--format: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
