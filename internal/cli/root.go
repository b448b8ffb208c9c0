package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExitError carries a process exit code out of a command. Err may be nil
// when the outcome was already reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError marks err as a usage or configuration error
func usageError(err error) error {
	return &ExitError{Code: 2, Err: err}
}

// NewRootCommand creates the mclean command tree. The root command sweeps
// the directories given as arguments.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mclean [flags] [DIRECTORY...]",
		Short: "Delete build leftovers and backup files",
		Long: `mclean walks the given directories (default: the current one) and deletes
backup files, LaTeX auxiliary files, patch leftovers and orphaned object files,
asking before each deletion unless --force is given.

Files inside a .git directory are never deleted. A .mcleankeep file in a swept
directory lists further files to keep, in .gitignore syntax.

Directories named like a subcommand must be given with a ./ prefix.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSweep,
	}

	// Add global flags
	AddGlobalFlags(cmd)

	addRuleFlags(cmd)
	cmd.Flags().BoolVarP(&sweepFlags.Force, "force", "f", false, "delete without asking")
	cmd.Flags().BoolVarP(&sweepFlags.DryRun, "dry-run", "n", false, "list disposable files, delete nothing")

	// Add commands
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
