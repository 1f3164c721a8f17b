package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/store"
	"github.com/Makepad-fr/tasks/internal/tasks"
	"github.com/Makepad-fr/tasks/internal/ui"
	"github.com/Makepad-fr/tasks/internal/view"
)

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

func newModel(t *testing.T, texts ...string) (Model, *tasks.Store, *store.Adapter) {
	t.Helper()
	a := store.NewAdapter(store.NewMemorySlot(), nil)
	s, err := tasks.Open(a)
	require.NoError(t, err)
	for _, txt := range texts {
		_, err := s.AddTask(txt)
		require.NoError(t, err)
	}
	return New(s, WithClock(func() time.Time { return now })), s, a
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestAddTaskThroughInput(t *testing.T) {
	m, s, a := newModel(t)

	m = send(m, runes("a"), runes("Buy milk"), enter)
	assert.Equal(t, modeNormal, m.mode)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "Buy milk", s.Tasks()[0].Text)

	saved, err := a.Load()
	require.NoError(t, err)
	assert.Len(t, saved, 1, "persisted immediately")
	assert.Len(t, m.list.Items(), 1)
}

func TestAddBlankKeepsInputOpen(t *testing.T) {
	m, s, _ := newModel(t)

	m = send(m, runes("a"), runes("   "), enter)
	assert.Equal(t, modeAdd, m.mode)
	assert.NotEmpty(t, m.inputErr)
	assert.Equal(t, 0, s.Len())

	m = send(m, esc)
	assert.Equal(t, modeNormal, m.mode)
}

func TestToggleAndDelete(t *testing.T) {
	m, s, _ := newModel(t, "first", "second")

	m = send(m, space)
	assert.True(t, s.Tasks()[0].Completed, "cursor starts on newest task")

	m = send(m, runes("d"))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "first", s.Tasks()[0].Text)
	assert.Len(t, m.list.Items(), 1)
}

func TestEditRejectsBlank(t *testing.T) {
	m, s, _ := newModel(t, "draft")

	m = send(m, runes("e"))
	assert.Equal(t, "draft", m.ti.Value())
	m.ti.SetValue("")
	m = send(m, enter)
	assert.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "draft", s.Tasks()[0].Text)

	m.ti.SetValue("final")
	m = send(m, enter)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "final", s.Tasks()[0].Text)
}

func TestEditKeepsLongText(t *testing.T) {
	long := strings.Repeat("a", 250)
	m, s, _ := newModel(t, long)

	m = send(m, runes("e"))
	assert.Equal(t, long, m.ti.Value())
	m = send(m, enter)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, long, s.Tasks()[0].Text)

	m = send(m, runes("e"), runes("b"), enter)
	assert.Equal(t, long+"b", s.Tasks()[0].Text)
}

func TestSearchFiltersLive(t *testing.T) {
	m, s, _ := newModel(t, "Buy milk", "Call mom")
	id := s.Tasks()[1].ID
	require.NoError(t, s.AddTagToTask(id, "Work"))
	m.refresh()

	m = send(m, runes("/"), runes("work"))
	assert.Equal(t, modeSearch, m.mode)
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "Buy milk", m.list.Items()[0].(listItem).row.Task.Text)

	m = send(m, enter)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "work", m.search)
	assert.Len(t, m.list.Items(), 1)

	m = send(m, esc)
	assert.Empty(t, m.search)
	assert.Len(t, m.list.Items(), 2)
}

func TestTagsAndRegistry(t *testing.T) {
	m, s, _ := newModel(t, "A")

	m = send(m, runes("n"), runes("Garden"), enter)
	assert.Contains(t, s.Tags(), "Garden")

	m = send(m, runes("t"), runes("Garden"), enter)
	assert.Equal(t, []string{"Garden"}, s.Tasks()[0].Tags)

	m = send(m, runes("N"), runes("Garden"), enter)
	assert.NotContains(t, s.Tags(), "Garden")
	assert.Equal(t, []string{"Garden"}, s.Tasks()[0].Tags, "registry delete does not cascade")

	m = send(m, runes("x"), runes("Garden"), enter)
	assert.Empty(t, s.Tasks()[0].Tags)

	m = send(m, runes("x"))
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "task has no tags", m.status)
}

func TestDeadlineInput(t *testing.T) {
	m, s, _ := newModel(t, "report")

	m = send(m, runes("D"))
	assert.Equal(t, "YYYY-MM-DD (empty clears)", m.ti.Placeholder)
	m = send(m, runes("not a date"), enter)
	assert.Equal(t, modeDeadline, m.mode)
	assert.Equal(t, "Use YYYY-MM-DD", m.inputErr)
	assert.Nil(t, s.Tasks()[0].Deadline)

	m.ti.SetValue("2025-06-10")
	m = send(m, enter)
	require.NotNil(t, s.Tasks()[0].Deadline)
	assert.Equal(t, model.Date{Year: 2025, Month: time.June, Day: 10}, *s.Tasks()[0].Deadline)
	assert.True(t, m.list.Items()[0].(listItem).row.Overdue)
	assert.Contains(t, m.View(), "overdue")

	m = send(m, runes("D"))
	assert.Equal(t, "2025-06-10", m.ti.Value())
	m.ti.SetValue("")
	m = send(m, enter)
	assert.Nil(t, s.Tasks()[0].Deadline)
}

func TestThemeToggleAndQuit(t *testing.T) {
	t.Cleanup(func() { ui.SetTheme("light") })
	ui.SetTheme("light")
	m, _, _ := newModel(t)

	m = send(m, runes("T"))
	assert.Equal(t, "dark", ui.Current().Name)
	assert.Contains(t, m.status, "dark")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewEmptyState(t *testing.T) {
	m, _, _ := newModel(t)
	out := m.View()
	assert.Contains(t, out, "Task Manager")
	assert.Contains(t, out, "No tasks found")
	assert.Contains(t, out, "Important")
}

func TestRenderRow(t *testing.T) {
	t.Cleanup(func() { ui.SetTheme("light") })
	ui.SetTheme("mono")
	d := model.Date{Year: 2025, Month: time.January, Day: 2}
	got := RenderRow(view.Row{
		Task:    model.Task{Text: "report", Tags: []string{"Work"}, Deadline: &d},
		Overdue: true,
	})
	assert.Equal(t, "[ ] report #Work due 2025-01-02 overdue", got)
}
