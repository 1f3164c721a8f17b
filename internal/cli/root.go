// Package cli is the scriptable shell: a cobra command tree whose
// subcommands each perform one Task Store operation.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, args...)}
}

func failure(err error) error {
	return &exitError{code: ExitError, err: err}
}

// Run executes the command line and returns an exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{out: stdout, errOut: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.code == ExitUsage {
			ui.Hint(stderr, "Run `tasks --help` for usage.")
		}
		return ee.code
	}
	// anything cobra rejected before RunE (unknown command, bad flags, arg count)
	ui.Hint(stderr, "Run `tasks --help` for usage.")
	return ExitUsage
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tasks",
		Short: "tasks - a task list with tags and deadlines",
		Long: `tasks keeps a newest-first task list with tags and deadlines.

Run without a subcommand to open the interactive list.`,
		Example: `  tasks add "Buy milk"
  tasks ls --search work
  tasks done 2
  tasks due 1 2025-07-01
  tasks tag add 1 Urgent`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(a)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.flags.configPath, "config", "", "config file (TOML)")
	f.StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the task data")
	f.StringVar(&a.flags.backend, "backend", "", "storage backend: file or sqlite")
	f.StringVar(&a.flags.theme, "theme", "", "color theme: light, dark or mono")
	f.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.BoolVar(&a.flags.persistTags, "persist-tags", false, "keep created tags across sessions")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newEditCmd(a),
		newDueCmd(a),
		newTagCmd(a),
		newTagsCmd(a),
		newUICmd(a),
	)
	return root
}
