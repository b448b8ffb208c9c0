package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/mclean/pkg/config"
	"github.com/sdejongh/mclean/pkg/models"
)

// validateSweepFlags validates the sweep flags and returns the roots to walk
func validateSweepFlags(args []string) ([]string, error) {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		if root == "" {
			return nil, fmt.Errorf("directory must not be empty")
		}
	}

	validOutputs := map[string]bool{
		"human":    true,
		"json":     true,
		"progress": true,
	}
	if !validOutputs[sweepFlags.Output] {
		return nil, fmt.Errorf("invalid output format: %s (valid: human, json, progress)", sweepFlags.Output)
	}

	validReports := map[string]bool{
		"human": true,
		"json":  true,
	}
	if !validReports[sweepFlags.ReportFormat] {
		return nil, fmt.Errorf("invalid report format: %s (valid: human, json)", sweepFlags.ReportFormat)
	}

	return roots, nil
}

// loadConfig loads the file named by --config, or the defaults
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.Default(), nil
}

// applyFlagsToConfig overrides config values with command-line flags. Rule
// groups are enabled by either source; other settings only change when the
// flag was given.
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	cfg.Rules.RuleFlags = cfg.Rules.RuleFlags.Merge(models.RuleFlags{
		Diff:     sweepFlags.Diff,
		Compiled: sweepFlags.Compiled,
		Latex:    sweepFlags.Latex,
	})
	// Force never comes from a file
	cfg.Rules.Force = sweepFlags.Force

	if cmd.Flags().Changed("output") {
		cfg.Output.Format = models.OutputFormat(sweepFlags.Output)
	}
	if cmd.Flags().Changed("keep-file") {
		cfg.Rules.KeepFile = sweepFlags.KeepFile
	}

	if globalFlags.Quiet {
		cfg.Output.Quiet = true
	}
	if globalFlags.Verbose {
		cfg.Output.Verbose = true
	}

	if cmd.Flags().Changed("log-file") {
		cfg.Logging.File = globalFlags.LogFile
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = globalFlags.LogFormat
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = globalFlags.LogLevel
	}
}

// createSweepOperation creates a sweep operation from configuration
func createSweepOperation(cfg *config.Config, roots []string) (*models.SweepOperation, error) {
	operation := &models.SweepOperation{
		ID:             uuid.New().String(),
		Roots:          roots,
		Flags:          cfg.Rules.RuleFlags,
		DryRun:         sweepFlags.DryRun,
		ExtraPatterns:  cfg.Rules.Patterns,
		ExtraWhitelist: cfg.Rules.Whitelist,
		KeepFile:       cfg.Rules.KeepFile,
		Output:         cfg.Output.Format,
		CreatedAt:      time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
