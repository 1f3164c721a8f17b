// Package tui is the interactive shell: a Bubble Tea list over the Derived
// View with inline inputs that call Task Store operations.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/tasks"
	"github.com/Makepad-fr/tasks/internal/ui"
	"github.com/Makepad-fr/tasks/internal/view"
)

const appTitle = "Task Manager"

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeAdd
	modeEdit
	modeTag
	modeUntag
	modeDeadline
	modeNewTag
	modeDeleteTag
)

// listItem adapts a view.Row to bubbles/list.Item
type listItem struct {
	row view.Row
}

func (i listItem) FilterValue() string { return i.row.Task.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprintln(w, prefix+RenderRow(it.row))
}

// RenderRow formats a row as "☐ text #tag due 2025-01-02 overdue".
func RenderRow(r view.Row) string {
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	text := r.Task.Text
	if r.Task.Completed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	parts := []string{box, text}
	for _, tag := range r.Task.Tags {
		parts = append(parts, t.Tag.Render("#"+tag))
	}
	if r.Task.Deadline != nil {
		parts = append(parts, t.Muted.Render("due "+r.Task.Deadline.String()))
	}
	if r.Overdue {
		parts = append(parts, t.Error.Render("overdue"))
	}
	return strings.Join(parts, " ")
}

// Model implements tea.Model over a *tasks.Store.
type Model struct {
	store *tasks.Store
	now   func() time.Time

	list   list.Model
	ti     textinput.Model
	mode   mode
	search string

	inputErr  string
	status    string
	statusErr bool

	width, height int
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the clock used for overdue flags.
func WithClock(now func() time.Time) Option { return func(m *Model) { m.now = now } }

var (
	addBind      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind     = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done"))
	deleteBind   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	searchBind   = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	tagBind      = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag"))
	untagBind    = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "untag"))
	deadlineBind = key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "deadline"))
	newTagBind   = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new tag"))
	delTagBind   = key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "drop tag"))
	themeBind    = key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme"))
	quitBind     = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit"))
)

// New builds the model and renders the initial list.
func New(s *tasks.Store, opts ...Option) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	short := []key.Binding{addBind, editBind, toggleBind, deleteBind, searchBind, tagBind}
	full := []key.Binding{addBind, editBind, toggleBind, deleteBind, searchBind, tagBind,
		untagBind, deadlineBind, newTagBind, delTagBind, themeBind, quitBind}
	l.AdditionalShortHelpKeys = func() []key.Binding { return short }
	l.AdditionalFullHelpKeys = func() []key.Binding { return full }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0 // task text has no length cap

	m := Model{
		store:  s,
		now:    time.Now,
		list:   l,
		ti:     ti,
		width:  80,
		height: 24,
	}
	for _, o := range opts {
		o(&m)
	}
	m.resize()
	m.refresh()
	return m
}

// Run starts the program on the alternate screen.
func Run(s *tasks.Store) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.mode != modeNormal {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	m.status, m.statusErr = "", false

	switch {
	case key.Matches(km, quitBind):
		if km.String() == "esc" && m.search != "" {
			m.search = ""
			m.refresh()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(km, toggleBind):
		if t, ok := m.selected(); ok {
			m.warn(m.store.ToggleComplete(t.ID))
			m.refresh()
		}
		return m, nil
	case key.Matches(km, deleteBind):
		if t, ok := m.selected(); ok {
			m.warn(m.store.DeleteTask(t.ID))
			m.refresh()
			m.setStatus("deleted: " + t.Text)
		}
		return m, nil
	case key.Matches(km, addBind):
		return m, m.openInput(modeAdd, "", "New task...", nil)
	case key.Matches(km, searchBind):
		return m, m.openInput(modeSearch, m.search, "Search tasks or tags...", nil)
	case key.Matches(km, newTagBind):
		return m, m.openInput(modeNewTag, "", "New tag name...", nil)
	case key.Matches(km, delTagBind):
		return m, m.openInput(modeDeleteTag, "", "Tag to remove from the list...", m.store.Tags())
	case key.Matches(km, themeBind):
		m.setStatus("theme: " + ui.Toggle())
		m.list.Styles.HelpStyle = ui.Current().Muted
		m.list.Styles.PaginationStyle = ui.Current().Muted
		return m, nil
	}

	if t, ok := m.selected(); ok {
		switch {
		case key.Matches(km, editBind):
			return m, m.openInput(modeEdit, t.Text, "Edit task...", nil)
		case key.Matches(km, tagBind):
			return m, m.openInput(modeTag, "", "Tag for this task...", m.store.Tags())
		case key.Matches(km, untagBind):
			if len(t.Tags) == 0 {
				m.setStatus("task has no tags")
				return m, nil
			}
			return m, m.openInput(modeUntag, "", "Tag to remove...", t.Tags)
		case key.Matches(km, deadlineBind):
			cur := ""
			if t.Deadline != nil {
				cur = t.Deadline.String()
			}
			return m, m.openInput(modeDeadline, cur, model.DateHint+" (empty clears)", nil)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) openInput(md mode, value, placeholder string, suggestions []string) tea.Cmd {
	m.mode = md
	m.inputErr = ""
	m.ti.Placeholder = placeholder
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.ShowSuggestions = len(suggestions) > 0
	m.ti.SetSuggestions(suggestions)
	m.resize()
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeNormal
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.SetSuggestions(nil)
	m.ti.Blur()
	m.resize()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			if m.submit(m.ti.Value()) {
				m.closeInput()
			}
			return m, nil
		case "esc":
			if m.mode == modeSearch {
				m.search = ""
				m.refresh()
			}
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if m.mode == modeSearch && m.search != m.ti.Value() {
		m.search = m.ti.Value()
		m.refresh()
	}
	return m, cmd
}

// submit applies the active input. It returns false to keep the input open.
func (m *Model) submit(value string) bool {
	trimmed := strings.TrimSpace(value)
	switch m.mode {
	case modeSearch:
		m.search = value
	case modeAdd:
		if trimmed == "" {
			m.inputErr = "Text cannot be empty"
			return false
		}
		_, err := m.store.AddTask(trimmed)
		m.warn(err)
		m.list.Select(0)
	case modeNewTag:
		if trimmed == "" {
			m.inputErr = "Tag cannot be empty"
			return false
		}
		m.warn(m.store.CreateTag(trimmed))
	case modeDeleteTag:
		m.warn(m.store.DeleteTag(trimmed))
	default:
		t, ok := m.selected()
		if !ok {
			return true
		}
		switch m.mode {
		case modeEdit:
			if trimmed == "" {
				m.inputErr = "Text cannot be empty"
				return false
			}
			m.warn(m.store.EditTaskText(t.ID, trimmed))
		case modeTag:
			if trimmed == "" {
				m.inputErr = "Tag cannot be empty"
				return false
			}
			m.warn(m.store.AddTagToTask(t.ID, trimmed))
		case modeUntag:
			m.warn(m.store.RemoveTagFromTask(t.ID, trimmed))
		case modeDeadline:
			if trimmed == "" {
				m.warn(m.store.SetDeadline(t.ID, nil))
				break
			}
			d, err := model.ParseDate(trimmed)
			if err != nil {
				m.inputErr = "Use " + model.DateHint
				return false
			}
			m.warn(m.store.SetDeadline(t.ID, &d))
		}
	}
	m.refresh()
	return true
}

func (m *Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return it.row.Task, true
}

// refresh rebuilds the list from the Derived View.
func (m *Model) refresh() {
	rows := view.Rows(m.store.Tasks(), m.search, m.now())
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = listItem{row: r}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// warn surfaces a persistence error without interrupting the session.
func (m *Model) warn(err error) {
	if err != nil {
		m.status, m.statusErr = "not saved: "+err.Error(), true
	}
}

func (m *Model) setStatus(s string) {
	if !m.statusErr {
		m.status = s
	}
}

func (m *Model) resize() {
	chrome := 8
	if m.mode != modeNormal {
		chrome += 4
	}
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.ti.Width = m.width - 12
}

func (m Model) View() string {
	t := ui.Current()
	st := view.Summarize(m.store.Tasks(), m.now())

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d   %s",
		t.Title.Render(appTitle),
		t.Success.Render(t.SymDone), st.Done,
		t.Pending.Render(t.SymPending), st.Pending,
		t.Error.Render("overdue"), st.Overdue,
		t.Accent.Render("Total"), st.Total,
		t.Muted.Render("theme "+t.Name),
	)
	tagLine := make([]string, 0, len(m.store.Tags()))
	for _, tag := range m.store.Tags() {
		tagLine = append(tagLine, t.Tag.Render(tag))
	}
	lines := []string{header, t.Muted.Render("Tags: ") + strings.Join(tagLine, t.Muted.Render(" · "))}
	if m.search != "" {
		lines = append(lines, t.Accent.Render("Search: ")+m.search)
	}
	lines = append(lines, "")

	if len(m.list.Items()) == 0 {
		lines = append(lines,
			t.Title.Render("No tasks found"),
			t.Muted.Render("Create your first task or change the search"),
		)
	} else {
		lines = append(lines, m.list.View())
	}

	if m.mode != modeNormal {
		title := inputTitle(m.mode)
		if m.inputErr != "" {
			title += "  " + t.Error.Render(m.inputErr)
		}
		box := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		lines = append(lines, box.Render(title+"\n"+m.ti.View()))
	}
	if m.status != "" {
		style := t.Muted
		if m.statusErr {
			style = t.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	return ui.PanelString(strings.Join(lines, "\n"))
}

func inputTitle(md mode) string {
	switch md {
	case modeSearch:
		return "Search"
	case modeAdd:
		return "Add new task"
	case modeEdit:
		return "Edit task"
	case modeTag:
		return "Add tag to task"
	case modeUntag:
		return "Remove tag from task"
	case modeDeadline:
		return "Set deadline"
	case modeNewTag:
		return "Create tag"
	case modeDeleteTag:
		return "Delete tag"
	}
	return ""
}
