package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigger/githd/git"
)

func TestPublishFilesRequiresRightRef(t *testing.T) {
	store := NewStore()
	err := store.PublishFiles(FilesContext{Repo: &git.Repository{}, LeftRef: "main"})
	require.ErrorIs(t, err, ErrMissingRightRef)
	assert.Nil(t, store.Files())
}

func TestClearPublishesAllNullContext(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.PublishFiles(FilesContext{Repo: &git.Repository{Path: "/x"}, RightRef: "main"}))

	store.Clear()

	fc := store.Files()
	require.NotNil(t, fc)
	assert.Nil(t, fc.Repo)
	assert.Empty(t, fc.LeftRef)
	assert.Empty(t, fc.RightRef)
	assert.Empty(t, fc.SpecifiedPath)
}

func TestLastPublishWins(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.PublishFiles(FilesContext{Repo: &git.Repository{}, RightRef: "a"}))
	require.NoError(t, store.PublishFiles(FilesContext{Repo: &git.Repository{}, RightRef: "b"}))
	assert.Equal(t, "b", store.Files().RightRef)
}

func TestHistoryReturnsACopy(t *testing.T) {
	store := NewStore()
	store.PublishHistory(HistoryContext{Branch: "main"}, false)

	hc := store.History()
	hc.Branch = "mutated"
	assert.Equal(t, "main", store.History().Branch)
}

func TestSubscribersSeeFullReloadFlag(t *testing.T) {
	store := NewStore()
	var events []Event
	store.Subscribe(func(ev Event) { events = append(events, ev) })

	store.PublishHistory(HistoryContext{}, false)
	store.PublishHistory(HistoryContext{AllHistory: true}, true)
	require.NoError(t, store.PublishFiles(FilesContext{RightRef: "main"}))

	require.Len(t, events, 3)
	assert.Equal(t, EventHistory, events[0].Kind)
	assert.False(t, events[0].FullReload)
	assert.True(t, events[1].FullReload)
	assert.Equal(t, EventFiles, events[2].Kind)
}

func TestExpressMode(t *testing.T) {
	store := NewStore()
	assert.False(t, store.ExpressMode())

	var kinds []EventKind
	store.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	store.SetExpressMode(true)
	assert.True(t, store.ExpressMode())
	assert.Equal(t, []EventKind{EventExpress}, kinds)
}
