package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/store"
)

func TestSlotGetPut(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok, err := s.Get(store.TasksKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(store.TasksKey, []byte(`[]`)))
	require.NoError(t, s.Put(store.TasksKey, []byte(`["second"]`)))

	b, ok, err := s.Get(store.TasksKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["second"]`, string(b))

	assert.FileExists(t, filepath.Join(dir, FileName))
	assert.Error(t, s.Put("", []byte("x")))
}

func TestSlotPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	a := store.NewAdapter(s, nil)
	require.NoError(t, a.SaveTags([]string{"Errands"}))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })
	tags, ok, err := store.NewAdapter(s2, nil).LoadTags()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Errands"}, tags)
}
