package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tasks/internal/model"
)

// ErrMalformed marks a slot value that cannot be turned back into a collection.
var ErrMalformed = errors.New("malformed slot value")

// EncodeTasks serializes the full collection in the slot layout.
func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeTasks parses a slot value. Any deviation from the layout, or a value
// that would break the collection invariants, yields ErrMalformed.
func DecodeTasks(b []byte) ([]model.Task, error) {
	if err := validate(compiledTasks, b); err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	seen := make(map[model.ID]struct{}, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if strings.TrimSpace(t.Text) == "" {
			return nil, fmt.Errorf("%w: task %d: blank text", ErrMalformed, i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Tags == nil {
			t.Tags = []string{}
		}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// EncodeTags serializes the Tag Registry.
func EncodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.MarshalIndent(tags, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeTags parses a persisted Tag Registry.
func DecodeTags(b []byte) ([]string, error) {
	if err := validate(compiledTags, b); err != nil {
		return nil, err
	}
	var tags []string
	if err := json.Unmarshal(b, &tags); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func validate(schema *jsonschema.Schema, b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, schemaReason(err))
	}
	return nil
}

// schemaReason reduces a schema error to its first leaf cause.
func schemaReason(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + ve.Message
}
