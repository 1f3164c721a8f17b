package model

import (
	"slices"
	"time"
)

// ID identifies a task for the lifetime of the collection.
type ID string

func (id ID) String() string { return string(id) }

// Task is one entry of the task list.
// Field names match the persisted slot layout.
type Task struct {
	ID        ID        `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Deadline  *Date     `json:"deadline" yaml:"deadline"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// HasTag reports whether tag is in the task's tag set (case-sensitive).
func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	c := t
	c.Tags = append([]string{}, t.Tags...)
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	return c
}
