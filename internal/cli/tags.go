package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/ui"
)

// newTagCmd manages the tags carried by one task.
func newTagCmd(a *app) *cobra.Command {
	tag := &cobra.Command{
		Use:   "tag",
		Short: "Add or remove a tag on a task",
	}
	tag.AddCommand(
		&cobra.Command{
			Use:   "add <ref> <tag>",
			Short: "Add a tag to a task (free-form; need not be in the tag list)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.TrimSpace(args[1])
				if name == "" {
					return usagef("tag add: empty tag")
				}
				s, err := a.openStore(false)
				if err != nil {
					return err
				}
				t, err := resolve(s, args[0])
				if err != nil {
					return err
				}
				if err := saved(s.AddTagToTask(t.ID, name)); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("tagged %q: %s", name, t.Text))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <ref> <tag>",
			Short: "Remove a tag from a task",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.openStore(false)
				if err != nil {
					return err
				}
				t, err := resolve(s, args[0])
				if err != nil {
					return err
				}
				name := strings.TrimSpace(args[1])
				if err := saved(s.RemoveTagFromTask(t.ID, name)); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("untagged %q: %s", name, t.Text))
				return nil
			},
		},
	)
	return tag
}

// newTagsCmd manages the Tag Registry.
func newTagsCmd(a *app) *cobra.Command {
	tags := &cobra.Command{
		Use:   "tags",
		Short: "List, create or delete known tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listTags(a, cmd)
		},
	}
	tags.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List known tags",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return listTags(a, cmd)
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Add a tag to the list of known tags",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.TrimSpace(args[0])
				if name == "" {
					return usagef("tags create: empty name")
				}
				s, err := a.openStore(false)
				if err != nil {
					return err
				}
				if err := saved(s.CreateTag(name)); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "created tag: "+name)
				sessionOnlyHint(a, cmd)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a tag from the list of known tags (tasks keep it)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.openStore(false)
				if err != nil {
					return err
				}
				name := strings.TrimSpace(args[0])
				if err := saved(s.DeleteTag(name)); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "deleted tag: "+name)
				sessionOnlyHint(a, cmd)
				return nil
			},
		},
	)
	return tags
}

func listTags(a *app, cmd *cobra.Command) error {
	s, err := a.openStore(false)
	if err != nil {
		return err
	}
	t := ui.Current()
	for _, tag := range s.Tags() {
		fmt.Fprintln(cmd.OutOrStdout(), t.Tag.Render(tag))
	}
	return nil
}

func sessionOnlyHint(a *app, cmd *cobra.Command) {
	if !a.cfg.PersistTags {
		ui.Hint(cmd.ErrOrStderr(), "Hint: tags reset every session; enable persist_tags to keep them")
	}
}
