// Package view derives what the shells display from the task list.
// Nothing here is stored; overdue status is recomputed on every call.
package view

import (
	"strings"
	"time"

	"github.com/Makepad-fr/tasks/internal/model"
)

// Row is one displayed task.
type Row struct {
	Task    model.Task `json:"task" yaml:"task"`
	Overdue bool       `json:"overdue" yaml:"overdue"`
}

// Stats summarizes a task list.
type Stats struct {
	Total   int `json:"total" yaml:"total"`
	Done    int `json:"done" yaml:"done"`
	Pending int `json:"pending" yaml:"pending"`
	Overdue int `json:"overdue" yaml:"overdue"`
}

// Matches reports whether the task text or any tag contains search,
// ignoring case. An empty search matches everything.
func Matches(t model.Task, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Text), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filter keeps matching tasks in their original order.
func Filter(tasks []model.Task, search string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, search) {
			out = append(out, t)
		}
	}
	return out
}

// IsOverdue: a deadline strictly before the local date of now, on a task
// that is not completed.
func IsOverdue(t model.Task, now time.Time) bool {
	if t.Deadline == nil || t.Completed {
		return false
	}
	return t.Deadline.Before(model.DateOf(now.Local()))
}

// Rows filters tasks and flags overdue ones.
func Rows(tasks []model.Task, search string, now time.Time) []Row {
	filtered := Filter(tasks, search)
	rows := make([]Row, len(filtered))
	for i, t := range filtered {
		rows[i] = Row{Task: t, Overdue: IsOverdue(t, now)}
	}
	return rows
}

func Summarize(tasks []model.Task, now time.Time) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Done++
		} else {
			st.Pending++
		}
		if IsOverdue(t, now) {
			st.Overdue++
		}
	}
	return st
}

// Group splits rows into pending and done, keeping order.
func Group(rows []Row) (pending, done []Row) {
	for _, r := range rows {
		if r.Task.Completed {
			done = append(done, r)
		} else {
			pending = append(pending, r)
		}
	}
	return pending, done
}
