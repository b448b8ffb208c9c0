package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/mclean/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create an mclean configuration file. A file is only read when passed with --config.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configuration in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return usageError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Diff: %t\n", cfg.Rules.Diff)
			fmt.Fprintf(out, "Compiled: %t\n", cfg.Rules.Compiled)
			fmt.Fprintf(out, "Latex: %t\n", cfg.Rules.Latex)
			fmt.Fprintf(out, "Extra Patterns: %v\n", cfg.Rules.Patterns)
			fmt.Fprintf(out, "Extra Whitelist: %v\n", cfg.Rules.Whitelist)
			fmt.Fprintf(out, "Keep File: %s\n", cfg.Rules.KeepFile)
			fmt.Fprintf(out, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [PATH]",
		Short: "Create a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "mclean.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}
}
