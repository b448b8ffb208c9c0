package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sdejongh/mclean/pkg/clean"
	"github.com/sdejongh/mclean/pkg/config"
	"github.com/sdejongh/mclean/pkg/logging"
	"github.com/sdejongh/mclean/pkg/models"
	"github.com/sdejongh/mclean/pkg/output"
	"github.com/sdejongh/mclean/pkg/prompt"
	"github.com/sdejongh/mclean/pkg/storage"
	"github.com/sdejongh/mclean/pkg/sweep"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [DIRECTORY...]",
		Short: "List disposable files without deleting them",
		Long: `Walk the given directories and report every file that would be deleted,
without asking and without deleting anything. This is equivalent to --dry-run.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sweepFlags.DryRun = true
			return runSweep(cmd, args)
		},
	}

	addRuleFlags(cmd)

	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	roots, err := validateSweepFlags(args)
	if err != nil {
		return usageError(err)
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return usageError(fmt.Errorf("failed to load config: %w", err))
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("invalid configuration: %w", err))
	}

	// Create sweep operation
	operation, err := createSweepOperation(cfg, roots)
	if err != nil {
		return usageError(fmt.Errorf("failed to create sweep operation: %w", err))
	}

	backend := storage.NewLocal()
	defer backend.Close()

	// Existence checks go through the backend so they see the same tree
	checker := clean.CheckerFunc(func(path string) bool {
		ok, err := backend.Exists(ctx, path)
		return err == nil && ok
	})
	classifier, err := clean.NewClassifier(operation.Flags, checker, operation.ExtraPatterns)
	if err != nil {
		return usageError(fmt.Errorf("failed to create classifier: %w", err))
	}
	whitelist, err := clean.NewWhitelist(operation.ExtraWhitelist)
	if err != nil {
		return usageError(fmt.Errorf("failed to create whitelist: %w", err))
	}

	// Create logger
	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return usageError(fmt.Errorf("failed to create logger: %w", err))
	}
	defer logger.Close()

	stdout := cmd.OutOrStdout()
	formatter := createFormatter(cfg.Output, operation.DryRun)
	confirmer := createConfirmer(ctx, cmd, formatter, operation, logger)
	if closer, ok := confirmer.(io.Closer); ok {
		defer closer.Close()
	}

	engine := sweep.NewEngine(backend, classifier, whitelist, confirmer, formatter, logger, operation)
	engine.SetOutput(stdout)

	report, err := engine.Run(ctx)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("sweep failed: %w", err)}
	}

	// Write the report if requested. Without a path it follows the
	// questions, so a JSON formatter keeps stdout to itself.
	if sweepFlags.Report != "" || cmd.Flags().Changed("report-format") {
		reportOut := stdout
		if !formatter.Interactive() {
			reportOut = cmd.ErrOrStderr()
		}
		if err := output.WriteSweepReport(report, sweepFlags.Report, sweepFlags.ReportFormat, reportOut); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("failed to write report: %w", err)}
		}
	}

	if code := report.Status.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// createFormatter creates the formatter for the configured output format
func createFormatter(cfg config.OutputConfig, dryRun bool) output.Formatter {
	switch cfg.Format {
	case models.OutputJSON:
		return output.NewJSONFormatter()
	case models.OutputProgress:
		return output.NewProgressFormatter(dryRun)
	default:
		return output.NewHumanFormatter(cfg.Quiet, cfg.Verbose)
	}
}

// createConfirmer picks the confirmation strategy. Questions share stdout
// with human narration and move to stderr when stdout carries a document.
func createConfirmer(ctx context.Context, cmd *cobra.Command, formatter output.Formatter, operation *models.SweepOperation, logger logging.Logger) prompt.Confirmer {
	if operation.Flags.Force {
		if formatter.Interactive() {
			return prompt.NewAlways(cmd.OutOrStdout())
		}
		return prompt.NewAlways(io.Discard)
	}

	out := cmd.OutOrStdout()
	if !formatter.Interactive() {
		out = cmd.ErrOrStderr()
	}

	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && !operation.DryRun && !term.IsTerminal(int(file.Fd())) {
		logger.Warn(ctx, "Standard input is not a terminal, answers are read from it", nil)
		if globalFlags.Verbose {
			fmt.Fprintln(cmd.ErrOrStderr(), "mclean: reading answers from a non-terminal standard input")
		}
	}

	return prompt.NewTerminal(in, out)
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	// If no log file specified, return null logger
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      level,
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}
