package store

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/model"
)

func sampleTasks() []model.Task {
	due := model.Date{Year: 2025, Month: time.May, Day: 1}
	return []model.Task{
		{
			ID:        "0190c2a4-1",
			Text:      "Buy milk",
			Tags:      []string{"Work", "Urgent"},
			Deadline:  &due,
			Completed: true,
			CreatedAt: time.Date(2025, 4, 20, 9, 30, 0, 123, time.UTC),
		},
		{
			ID:        "0190c2a4-0",
			Text:      "Call mom",
			Tags:      []string{},
			CreatedAt: time.Date(2025, 4, 19, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	cases := map[string][]model.Task{
		"empty":     {},
		"populated": sampleTasks(),
	}
	for name, tasks := range cases {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(NewMemorySlot(), nil)

			first, err := a.Load()
			require.NoError(t, err)
			assert.Empty(t, first)

			require.NoError(t, a.Save(tasks))
			got, err := a.Load()
			require.NoError(t, err)
			require.Len(t, got, len(tasks))
			for i := range tasks {
				assert.Equal(t, tasks[i].ID, got[i].ID)
				assert.Equal(t, tasks[i].Text, got[i].Text)
				assert.Equal(t, tasks[i].Tags, got[i].Tags)
				assert.Equal(t, tasks[i].Deadline, got[i].Deadline)
				assert.Equal(t, tasks[i].Completed, got[i].Completed)
				assert.True(t, tasks[i].CreatedAt.Equal(got[i].CreatedAt))
			}
		})
	}
}

func TestAdapterWireLayout(t *testing.T) {
	slot := NewMemorySlot()
	a := NewAdapter(slot, nil)
	require.NoError(t, a.Save(sampleTasks()[1:]))

	b, ok, err := slot.Get(TasksKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{
		"id": "0190c2a4-0",
		"text": "Call mom",
		"tags": [],
		"deadline": null,
		"completed": false,
		"createdAt": "2025-04-19T18:00:00Z"
	}]`, string(b))
}

func TestAdapterMalformedFallsBackToEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{{`,
		"object":         `{"tasks": []}`,
		"missing field":  `[{"id":"a","text":"x","tags":[],"completed":false,"createdAt":"2025-01-01T00:00:00Z"}]`,
		"numeric id":     `[{"id":1,"text":"x","tags":[],"deadline":null,"completed":false,"createdAt":"2025-01-01T00:00:00Z"}]`,
		"bad deadline":   `[{"id":"a","text":"x","tags":[],"deadline":"soon","completed":false,"createdAt":"2025-01-01T00:00:00Z"}]`,
		"duplicate tags": `[{"id":"a","text":"x","tags":["W","W"],"deadline":null,"completed":false,"createdAt":"2025-01-01T00:00:00Z"}]`,
		"blank text":     `[{"id":"a","text":"   ","tags":[],"deadline":null,"completed":false,"createdAt":"2025-01-01T00:00:00Z"}]`,
		"duplicate ids":  `[{"id":"a","text":"x","tags":[],"deadline":null,"completed":false,"createdAt":"2025-01-01T00:00:00Z"},{"id":"a","text":"y","tags":[],"deadline":null,"completed":false,"createdAt":"2025-01-01T00:00:00Z"}]`,
		"bad created at": `[{"id":"a","text":"x","tags":[],"deadline":null,"completed":false,"createdAt":"yesterday"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			slot := NewMemorySlot()
			require.NoError(t, slot.Put(TasksKey, []byte(raw)))

			var buf bytes.Buffer
			a := NewAdapter(slot, log.New(&buf))
			got, err := a.Load()
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Contains(t, buf.String(), "ignoring saved tasks")
		})
	}
}

func TestDecodeTasksErrMalformed(t *testing.T) {
	_, err := DecodeTasks([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrMalformed)
}

type brokenSlot struct{ err error }

func (b brokenSlot) Get(string) ([]byte, bool, error) { return nil, false, b.err }
func (b brokenSlot) Put(string, []byte) error         { return b.err }
func (b brokenSlot) Close() error                     { return nil }

func TestAdapterSlotErrors(t *testing.T) {
	boom := errors.New("disk full")
	a := NewAdapter(brokenSlot{err: boom}, nil)

	_, err := a.Load()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, a.Save(sampleTasks()), boom)
	assert.ErrorIs(t, a.SaveTags([]string{"Work"}), boom)
}

func TestAdapterTags(t *testing.T) {
	slot := NewMemorySlot()
	a := NewAdapter(slot, nil)

	_, ok, err := a.LoadTags()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, a.SaveTags([]string{"Work", "Home"}))
	tags, ok, err := a.LoadTags()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Work", "Home"}, tags)

	require.NoError(t, slot.Put(TagsKey, []byte(`["a","a"]`)))
	_, ok, err = a.LoadTags()
	require.NoError(t, err)
	assert.False(t, ok)
}
