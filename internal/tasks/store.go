// Package tasks owns the canonical task list and the Tag Registry.
//
// Every mutation ends with a write of the whole collection to the
// persistence layer. A failed write keeps the in-memory change and is
// returned as a warning; it never rolls the store back.
package tasks

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/tasks/internal/model"
)

// DefaultTags seed the Tag Registry of every fresh session.
var DefaultTags = []string{"Important", "Work", "Personal", "Urgent"}

// Persistence is what the store needs from the persistence adapter.
type Persistence interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
	LoadTags() ([]string, bool, error)
	SaveTags(tags []string) error
}

// Store is not safe for concurrent use.
type Store struct {
	p           Persistence
	logger      *log.Logger
	now         func() time.Time
	newID       func() (model.ID, error)
	persistTags bool

	tasks []model.Task
	tags  []string
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option { return func(s *Store) { s.logger = l } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithIDFunc(f func() (model.ID, error)) Option { return func(s *Store) { s.newID = f } }

// WithPersistedTags makes the Tag Registry survive across sessions.
func WithPersistedTags(on bool) Option { return func(s *Store) { s.persistTags = on } }

// Open loads the saved collection through p.
func Open(p Persistence, opts ...Option) (*Store, error) {
	s := &Store{
		p:      p,
		logger: log.New(io.Discard),
		now:    time.Now,
		newID:  uuidV7,
	}
	for _, o := range opts {
		o(s)
	}

	loaded, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = loaded
	s.tags = slices.Clone(DefaultTags)
	if s.persistTags {
		saved, ok, err := p.LoadTags()
		if err != nil {
			return nil, fmt.Errorf("load tags: %w", err)
		}
		if ok {
			s.tags = saved
		}
	}
	return s, nil
}

func uuidV7() (model.ID, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return model.ID(u.String()), nil
}

// Tasks returns a copy of the collection, newest first.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

// Task returns a copy of the task with id.
func (s *Store) Task(id model.ID) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Tags returns the Tag Registry in insertion order.
func (s *Store) Tags() []string {
	return slices.Clone(s.tags)
}

// AddTask prepends a new task. Blank text is ignored and yields a zero Task.
func (s *Store) AddTask(text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, nil
	}
	id, err := s.freshID()
	if err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		ID:        id,
		Text:      text,
		Tags:      []string{},
		CreatedAt: s.now().UTC(),
	}
	s.tasks = append([]model.Task{t}, s.tasks...)
	return t.Clone(), s.commit("add")
}

func (s *Store) freshID() (model.ID, error) {
	for n := 0; n < 8; n++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("new id: %w", err)
		}
		if id != "" && s.index(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("new id: no unique id after retries")
}

// DeleteTask removes the task with id if present.
func (s *Store) DeleteTask(id model.ID) error {
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	return s.commit("delete")
}

// EditTaskText replaces the text of the task with id. Blank text is
// rejected and the old text kept.
func (s *Store) EditTaskText(id model.ID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s.update(id, func(t *model.Task) { t.Text = text })
	return s.commit("edit")
}

func (s *Store) ToggleComplete(id model.ID) error {
	s.update(id, func(t *model.Task) { t.Completed = !t.Completed })
	return s.commit("toggle")
}

// SetDeadline sets the deadline of the task with id; nil clears it.
func (s *Store) SetDeadline(id model.ID, d *model.Date) error {
	s.update(id, func(t *model.Task) {
		if d == nil {
			t.Deadline = nil
			return
		}
		v := *d
		t.Deadline = &v
	})
	return s.commit("deadline")
}

// AddTagToTask adds tag to the task's tag set. Adding a present tag is a no-op.
func (s *Store) AddTagToTask(id model.ID, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	s.update(id, func(t *model.Task) {
		if !t.HasTag(tag) {
			t.Tags = append(t.Tags, tag)
		}
	})
	return s.commit("tag")
}

func (s *Store) RemoveTagFromTask(id model.ID, tag string) error {
	tag = strings.TrimSpace(tag)
	s.update(id, func(t *model.Task) {
		t.Tags = slices.DeleteFunc(t.Tags, func(x string) bool { return x == tag })
	})
	return s.commit("untag")
}

// CreateTag adds name to the Tag Registry.
func (s *Store) CreateTag(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(s.tags, name) {
		return nil
	}
	s.tags = append(s.tags, name)
	return s.commitTags("create tag")
}

// DeleteTag removes name from the Tag Registry. Tasks keep the tag.
func (s *Store) DeleteTag(name string) error {
	name = strings.TrimSpace(name)
	s.tags = slices.DeleteFunc(s.tags, func(x string) bool { return x == name })
	return s.commitTags("delete tag")
}

func (s *Store) index(id model.ID) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) update(id model.ID, fn func(*model.Task)) {
	if i := s.index(id); i >= 0 {
		fn(&s.tasks[i])
	}
}

func (s *Store) commit(op string) error {
	if err := s.p.Save(s.tasks); err != nil {
		s.logger.Warn("changes not saved", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) commitTags(op string) error {
	if !s.persistTags {
		return nil
	}
	if err := s.p.SaveTags(s.tags); err != nil {
		s.logger.Warn("tags not saved", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
