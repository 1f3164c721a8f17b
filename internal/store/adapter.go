package store

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasks/internal/model"
)

// Adapter reads and writes the task collection through a Slot.
type Adapter struct {
	slot   Slot
	logger *log.Logger
}

// NewAdapter wraps slot. A nil logger discards warnings.
func NewAdapter(slot Slot, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{slot: slot, logger: logger}
}

// Load returns the saved collection. A missing or malformed value yields an
// empty collection; only a failing slot read is reported as an error.
func (a *Adapter) Load() ([]model.Task, error) {
	b, ok, err := a.slot.Get(TasksKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", TasksKey, err)
	}
	if !ok {
		return []model.Task{}, nil
	}
	tasks, err := DecodeTasks(b)
	if err != nil {
		a.logger.Warn("ignoring saved tasks", "key", TasksKey, "err", err)
		return []model.Task{}, nil
	}
	return tasks, nil
}

// Save overwrites the slot with the full collection.
func (a *Adapter) Save(tasks []model.Task) error {
	b, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := a.slot.Put(TasksKey, b); err != nil {
		return fmt.Errorf("write %s: %w", TasksKey, err)
	}
	a.logger.Debug("saved", "key", TasksKey, "count", len(tasks))
	return nil
}

// LoadTags returns a previously saved Tag Registry. ok is false when nothing
// usable is stored.
func (a *Adapter) LoadTags() (tags []string, ok bool, err error) {
	b, found, err := a.slot.Get(TagsKey)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", TagsKey, err)
	}
	if !found {
		return nil, false, nil
	}
	tags, err = DecodeTags(b)
	if err != nil {
		a.logger.Warn("ignoring saved tags", "key", TagsKey, "err", err)
		return nil, false, nil
	}
	return tags, true, nil
}

// SaveTags overwrites the Tag Registry slot.
func (a *Adapter) SaveTags(tags []string) error {
	b, err := EncodeTags(tags)
	if err != nil {
		return err
	}
	if err := a.slot.Put(TagsKey, b); err != nil {
		return fmt.Errorf("write %s: %w", TagsKey, err)
	}
	a.logger.Debug("saved", "key", TagsKey, "count", len(tags))
	return nil
}
