package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/tasks"
	"github.com/Makepad-fr/tasks/internal/ui"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new task (text can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return usagef("add: empty text")
			}
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			t, err := addTask(s, text)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added #1: "+t.Text)
			return nil
		},
	}
}

// addTask separates a failed write, after which the task exists in memory,
// from a failure to create the task at all.
func addTask(s *tasks.Store, text string) (model.Task, error) {
	t, err := s.AddTask(text)
	if err != nil && t.ID == "" {
		return t, failure(err)
	}
	return t, saved(err)
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <ref>",
		Short: "Toggle completion of a task (1-based index or id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			t, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if err := saved(s.ToggleComplete(t.ID)); err != nil {
				return err
			}
			state := "pending"
			if !t.Completed {
				state = "done"
			}
			ui.OK(cmd.OutOrStdout(), "marked "+state+": "+t.Text)
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"delete"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			t, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if err := saved(s.DeleteTask(t.ID)); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed: "+t.Text)
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return usagef("edit: empty text")
			}
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			t, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if err := saved(s.EditTaskText(t.ID, text)); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "edited: "+text)
			return nil
		},
	}
}

func newDueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "due <ref> <YYYY-MM-DD|none>",
		Short: "Set or clear the deadline of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d *model.Date
			if v := strings.ToLower(strings.TrimSpace(args[1])); v != "none" && v != "" {
				parsed, err := model.ParseDate(v)
				if err != nil {
					return usagef("due: expected %s or none, got %q", model.DateHint, args[1])
				}
				d = &parsed
			}
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			t, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if err := saved(s.SetDeadline(t.ID, d)); err != nil {
				return err
			}
			if d == nil {
				ui.OK(cmd.OutOrStdout(), "deadline cleared: "+t.Text)
			} else {
				ui.OK(cmd.OutOrStdout(), "due "+d.String()+": "+t.Text)
			}
			return nil
		},
	}
}

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(a)
		},
	}
}
