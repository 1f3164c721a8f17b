package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/tasks/internal/model"
)

func TestFilter(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Text: "Buy milk", Tags: []string{"Work"}},
		{ID: "2", Text: "Call mom", Tags: []string{"Personal"}},
	}

	got := Filter(tasks, "work")
	assert.Len(t, got, 1)
	assert.Equal(t, model.ID("1"), got[0].ID)

	assert.Equal(t, tasks, Filter(tasks, ""))

	got = Filter(tasks, "MOM")
	assert.Len(t, got, 1)
	assert.Equal(t, model.ID("2"), got[0].ID)

	assert.Empty(t, Filter(tasks, "dentist"))
	assert.Empty(t, Filter(nil, ""))
}

func TestMatchesNonASCII(t *testing.T) {
	task := model.Task{Text: "Позвонить маме", Tags: []string{"Личное"}}
	assert.True(t, Matches(task, "ПОЗВОНИТЬ"))
	assert.True(t, Matches(task, "личн"))
	assert.False(t, Matches(task, "работа"))
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	today := model.DateOf(now.Local())
	yesterday := today.AddDays(-1)
	tomorrow := today.AddDays(1)

	cases := []struct {
		name string
		task model.Task
		want bool
	}{
		{"yesterday open", model.Task{Deadline: &yesterday}, true},
		{"yesterday done", model.Task{Deadline: &yesterday, Completed: true}, false},
		{"today open", model.Task{Deadline: &today}, false},
		{"tomorrow open", model.Task{Deadline: &tomorrow}, false},
		{"no deadline", model.Task{}, false},
		{"no deadline done", model.Task{Completed: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsOverdue(tc.task, now))
		})
	}
}

func TestOverdueFollowsClock(t *testing.T) {
	d := model.Date{Year: 2025, Month: time.March, Day: 10}
	task := model.Task{Deadline: &d}
	assert.False(t, IsOverdue(task, time.Date(2025, time.March, 10, 23, 0, 0, 0, time.Local)))
	assert.True(t, IsOverdue(task, time.Date(2025, time.March, 11, 0, 1, 0, 0, time.Local)))
}

func TestRowsAndStats(t *testing.T) {
	now := time.Now()
	past := model.DateOf(now.Local()).AddDays(-3)
	tasks := []model.Task{
		{ID: "a", Text: "late report", Tags: []string{"Work"}, Deadline: &past},
		{ID: "b", Text: "done report", Tags: []string{"Work"}, Deadline: &past, Completed: true},
		{ID: "c", Text: "walk", Tags: []string{}},
	}

	rows := Rows(tasks, "report", now)
	assert.Len(t, rows, 2)
	assert.True(t, rows[0].Overdue)
	assert.False(t, rows[1].Overdue)

	assert.Equal(t, Stats{Total: 3, Done: 1, Pending: 2, Overdue: 1}, Summarize(tasks, now))

	pending, done := Group(Rows(tasks, "", now))
	assert.Len(t, pending, 2)
	assert.Len(t, done, 1)
	assert.Equal(t, model.ID("a"), pending[0].Task.ID)
	assert.Equal(t, model.ID("c"), pending[1].Task.ID)
	assert.Equal(t, model.ID("b"), done[0].Task.ID)
}
