package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/tui"
	"github.com/Makepad-fr/tasks/internal/ui"
	"github.com/Makepad-fr/tasks/internal/view"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// listing is the machine-readable form of `tasks ls`.
type listing struct {
	Stats view.Stats `json:"stats" yaml:"stats"`
	Tasks []entry    `json:"tasks" yaml:"tasks"`
}

// entry carries the 1-based index other commands accept as a ref.
type entry struct {
	Index   int        `json:"index" yaml:"index"`
	Task    model.Task `json:"task" yaml:"task"`
	Overdue bool       `json:"overdue" yaml:"overdue"`
}

type listOptions struct {
	search string
	group  bool
	output string
}

func newListCmd(a *app) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch o.output {
			case outputText, outputJSON, outputYAML:
			default:
				return usagef("ls: unknown output %q (text, json or yaml)", o.output)
			}
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			all := s.Tasks()
			now := time.Now()
			rows := view.Rows(all, o.search, now)
			index := make(map[model.ID]int, len(all))
			for i, t := range all {
				index[t.ID] = i + 1
			}
			l := listing{Stats: view.Summarize(all, now), Tasks: make([]entry, len(rows))}
			for i, r := range rows {
				l.Tasks[i] = entry{Index: index[r.Task.ID], Task: r.Task, Overdue: r.Overdue}
			}
			return writeListing(cmd.OutOrStdout(), l, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.search, "search", "s", "", "only tasks whose text or tags contain this (case-insensitive)")
	f.BoolVarP(&o.group, "group", "g", false, "group into pending and done")
	f.StringVarP(&o.output, "output", "o", outputText, "output format: text, json or yaml")
	return cmd
}

func writeListing(w io.Writer, l listing, o listOptions) error {
	switch o.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			return failure(fmt.Errorf("encode json: %w", err))
		}
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return failure(fmt.Errorf("encode yaml: %w", err))
		}
		if err := enc.Close(); err != nil {
			return failure(err)
		}
	default:
		ui.Panel(w, panelLines(l, o))
	}
	return nil
}

func panelLines(l listing, o listOptions) []string {
	t := ui.Current()
	st := l.Stats
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Tasks"),
		t.Success.Render(t.SymDone), st.Done,
		t.Pending.Render(t.SymPending), st.Pending,
		t.Accent.Render("Total"), st.Total,
	)
	lines := []string{header, t.Muted.Render(ui.ProgressBar(st.Done, st.Total, 28))}
	if st.Overdue > 0 {
		lines = append(lines, t.Error.Render(fmt.Sprintf("%d overdue", st.Overdue)))
	}
	if o.search != "" {
		lines = append(lines, t.Muted.Render(fmt.Sprintf("search %q: %d of %d", o.search, len(l.Tasks), st.Total)))
	}
	lines = append(lines, "")

	rows := make([]view.Row, len(l.Tasks))
	index := make(map[model.ID]int, len(l.Tasks))
	for i, e := range l.Tasks {
		rows[i] = view.Row{Task: e.Task, Overdue: e.Overdue}
		index[e.Task.ID] = e.Index
	}
	if o.group {
		pending, done := view.Group(rows)
		lines = append(lines, t.Accent.Render("Pending"))
		lines = append(lines, rowLines(pending, index)...)
		lines = append(lines, "", t.Accent.Render("Done"))
		lines = append(lines, rowLines(done, index)...)
	} else {
		lines = append(lines, rowLines(rows, index)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `tasks add \"Buy milk\"`"))
	return lines
}

func rowLines(rows []view.Row, index map[model.ID]int) []string {
	t := ui.Current()
	if len(rows) == 0 {
		return []string{t.Muted.Render("No tasks found")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		idx := t.Muted.Render(fmt.Sprintf("%2d.", index[r.Task.ID]))
		out = append(out, idx+" "+tui.RenderRow(r))
	}
	return out
}
