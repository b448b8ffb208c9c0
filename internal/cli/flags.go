package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"YAML config file (none is read unless given)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"print a summary when the sweep ends",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"do not print the directories being entered",
	)
	cmd.PersistentFlags().StringVar(&globalFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.PersistentFlags().StringVar(&globalFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}

// SweepFlags holds the flags of the sweep and list commands
type SweepFlags struct {
	Force        bool
	Compiled     bool
	Latex        bool
	Diff         bool
	DryRun       bool
	Output       string
	KeepFile     string
	Report       string
	ReportFormat string
}

var sweepFlags SweepFlags

// addRuleFlags adds the rule group and output flags shared by every
// command that sweeps
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&sweepFlags.Compiled, "compiled", "c", false, "delete .o and .pyc files whose source is gone")
	cmd.Flags().BoolVarP(&sweepFlags.Latex, "latex", "l", false, "delete LaTeX auxiliary files and stale AucTeX auto files")
	cmd.Flags().BoolVarP(&sweepFlags.Diff, "diff", "d", false, "delete .orig and .rej files")
	cmd.Flags().StringVarP(&sweepFlags.Output, "output", "o", "human", "output format: human, json, progress")
	cmd.Flags().StringVar(&sweepFlags.KeepFile, "keep-file", "", "per-directory keep file name (default .mcleankeep)")
	cmd.Flags().StringVar(&sweepFlags.Report, "report", "", "write the list of deleted files to a file")
	cmd.Flags().StringVar(&sweepFlags.ReportFormat, "report-format", "human", "report format: human, json")
}
