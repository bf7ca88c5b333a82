package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigger/githd/config"
	"github.com/yigger/githd/git"
	"github.com/yigger/githd/view"
)

const manualEntry = "Enter a reference manually..."

func newTestCenter(t *testing.T, cat *fakeCatalog, ui *fakeInteractor) (*Center, *view.Store) {
	t.Helper()
	store := view.NewStore()
	center, err := NewCenter(NewRegistry(), cat, store, ui, nil, nil)
	require.NoError(t, err)
	return center, store
}

func singleRepoCatalog() *fakeCatalog {
	repo := &git.Repository{Path: "/work/githd"}
	return &fakeCatalog{
		repos: []*git.Repository{repo},
		refs: []git.Ref{
			{Kind: git.RefHead, Name: "main", Hash: "aaa"},
			{Kind: git.RefTag, Name: "v1", Hash: "bbb"},
		},
		current: "main",
	}
}

func TestDiffBranchesPublishesBothSides(t *testing.T) {
	ui := &fakeInteractor{picks: []pickResponse{{label: "main"}, {label: "v1"}}}
	center, store := newTestCenter(t, singleRepoCatalog(), ui)

	require.NoError(t, center.diffBranches())

	fc := store.Files()
	require.NotNil(t, fc)
	assert.Equal(t, "main", fc.LeftRef)
	assert.Equal(t, "v1", fc.RightRef)

	// The second prompt names the already-resolved source.
	require.Len(t, ui.pickTitles, 2)
	assert.Contains(t, ui.pickTitles[1], "compare with main")
}

func TestDiffBranchesCancelledTargetPublishesNothing(t *testing.T) {
	ui := &fakeInteractor{picks: []pickResponse{{label: "main"}, {cancel: true}}}
	center, store := newTestCenter(t, singleRepoCatalog(), ui)

	// Pre-existing context must survive the aborted flow untouched.
	require.NoError(t, store.PublishFiles(view.FilesContext{RightRef: "old", Repo: &git.Repository{}}))

	require.NoError(t, center.diffBranches())

	fc := store.Files()
	require.NotNil(t, fc)
	assert.Equal(t, "old", fc.RightRef)
	assert.Equal(t, []string{"Invalid selection"}, ui.notices)
}

func TestDiffBranchesCancelledSourceIsMandatory(t *testing.T) {
	ui := &fakeInteractor{picks: []pickResponse{{cancel: true}}}
	center, store := newTestCenter(t, singleRepoCatalog(), ui)

	require.NoError(t, center.diffBranches())
	assert.Nil(t, store.Files())
	assert.Equal(t, []string{"Invalid selection"}, ui.notices)
	// Only the source round ran.
	assert.Len(t, ui.pickTitles, 1)
}

func TestDiffFileLeavesLeftRefToConsumer(t *testing.T) {
	cat := singleRepoCatalog()
	cat.reposForPath = map[string]*git.Repository{"/work/githd/main.go": cat.repos[0]}
	ui := &fakeInteractor{picks: []pickResponse{{label: "v1"}}}
	center, store := newTestCenter(t, cat, ui)

	require.NoError(t, center.diffFile("/work/githd/main.go"))

	fc := store.Files()
	require.NotNil(t, fc)
	assert.Empty(t, fc.LeftRef)
	assert.Equal(t, "v1", fc.RightRef)
	assert.Equal(t, "/work/githd/main.go", fc.SpecifiedPath)
}

func TestInputRefManualEntry(t *testing.T) {
	ui := &fakeInteractor{
		picks:  []pickResponse{{label: manualEntry}},
		inputs: []inputResponse{{text: "  abc123  "}},
	}
	center, store := newTestCenter(t, singleRepoCatalog(), ui)

	require.NoError(t, center.inputRef())

	fc := store.Files()
	require.NotNil(t, fc)
	assert.Equal(t, "abc123", fc.RightRef)
}

func TestViewBranchHistoryCancelIsSilent(t *testing.T) {
	ui := &fakeInteractor{picks: []pickResponse{{cancel: true}}}
	center, store := newTestCenter(t, singleRepoCatalog(), ui)

	require.NoError(t, center.viewBranchHistory())
	assert.Nil(t, store.History())
	assert.Empty(t, ui.notices)
}

func TestViewBranchHistoryStripsCurrentMark(t *testing.T) {
	ui := &fakeInteractor{picks: []pickResponse{{label: "main"}}}
	center, store := newTestCenter(t, singleRepoCatalog(), ui)

	require.NoError(t, center.viewBranchHistory())
	hc := store.History()
	require.NotNil(t, hc)
	assert.Equal(t, "main", hc.Branch)
}

func TestViewHistoryWithoutRepositories(t *testing.T) {
	ui := &fakeInteractor{}
	center, store := newTestCenter(t, &fakeCatalog{}, ui)

	require.NoError(t, center.viewHistory())
	assert.Nil(t, store.History())
	assert.Equal(t, []string{"No repository available"}, ui.notices)
	// No prompt was shown.
	assert.Empty(t, ui.pickTitles)
}

func TestViewAuthorHistoryRequiresHistoryContext(t *testing.T) {
	center, _ := newTestCenter(t, singleRepoCatalog(), &fakeInteractor{})
	err := center.viewAuthorHistory()
	require.ErrorIs(t, err, ErrNoHistoryContext)
}

func TestViewAuthorHistoryFilters(t *testing.T) {
	cat := singleRepoCatalog()
	cat.authors = []git.Author{{Name: "Alice", Email: "alice@example.com"}}

	t.Run("PickAuthor", func(t *testing.T) {
		ui := &fakeInteractor{picks: []pickResponse{{label: "Alice"}}}
		center, store := newTestCenter(t, cat, ui)
		store.PublishHistory(view.HistoryContext{Repo: cat.repos[0]}, false)

		require.NoError(t, center.viewAuthorHistory())
		hc := store.History()
		require.NotNil(t, hc)
		assert.Equal(t, "alice@example.com", hc.Author)
	})

	t.Run("PickAllClearsFilter", func(t *testing.T) {
		ui := &fakeInteractor{picks: []pickResponse{{label: "All"}}}
		center, store := newTestCenter(t, cat, ui)
		store.PublishHistory(view.HistoryContext{Repo: cat.repos[0], Author: "alice@example.com"}, false)

		require.NoError(t, center.viewAuthorHistory())
		hc := store.History()
		require.NotNil(t, hc)
		assert.Empty(t, hc.Author)
	})
}

func TestViewAllHistoryRequestsFullReload(t *testing.T) {
	ui := &fakeInteractor{}
	center, store := newTestCenter(t, singleRepoCatalog(), ui)

	var events []view.Event
	store.Subscribe(func(ev view.Event) { events = append(events, ev) })

	require.NoError(t, center.viewAllHistory())

	hc := store.History()
	require.NotNil(t, hc)
	assert.True(t, hc.AllHistory)
	require.Len(t, events, 1)
	assert.True(t, events[0].FullReload)
}

func TestViewLineHistory(t *testing.T) {
	cat := singleRepoCatalog()
	cat.reposForPath = map[string]*git.Repository{"/work/githd/main.go": cat.repos[0]}
	center, store := newTestCenter(t, cat, &fakeInteractor{})

	require.NoError(t, center.viewLineHistory("/work/githd/main.go", 42))
	hc := store.History()
	require.NotNil(t, hc)
	assert.Equal(t, 42, hc.Line)
	assert.Equal(t, "/work/githd/main.go", hc.SpecifiedPath)
}

func TestClearContext(t *testing.T) {
	center, store := newTestCenter(t, singleRepoCatalog(), &fakeInteractor{})
	require.NoError(t, store.PublishFiles(view.FilesContext{Repo: &git.Repository{}, RightRef: "main"}))

	require.NoError(t, center.clearContext())

	fc := store.Files()
	require.NotNil(t, fc)
	assert.Nil(t, fc.Repo)
	assert.Empty(t, fc.LeftRef)
	assert.Empty(t, fc.RightRef)
	assert.Empty(t, fc.SpecifiedPath)
}

func TestToggleExpressModePersists(t *testing.T) {
	t.Setenv("GITHD_CONFIG_DIR", t.TempDir())
	state := &config.State{}
	store := view.NewStore()
	center, err := NewCenter(NewRegistry(), singleRepoCatalog(), store, &fakeInteractor{}, state, nil)
	require.NoError(t, err)

	require.NoError(t, center.toggleExpressMode())
	assert.True(t, store.ExpressMode())
	assert.True(t, state.ExpressMode)

	require.NoError(t, center.toggleExpressMode())
	assert.False(t, store.ExpressMode())
	assert.False(t, state.ExpressMode)
}

func TestCommandsDispatchThroughRegistry(t *testing.T) {
	reg := NewRegistry()
	store := view.NewStore()
	ui := &fakeInteractor{picks: []pickResponse{{label: "main"}, {label: "v1"}}}
	_, err := NewCenter(reg, singleRepoCatalog(), store, ui, nil, nil)
	require.NoError(t, err)

	d := newFakeDispatcher()
	require.NoError(t, reg.BindAll(d))
	defer reg.Dispose()

	d.emit(CmdDiffBranches)

	fc := store.Files()
	require.NotNil(t, fc)
	assert.Equal(t, "main", fc.LeftRef)
	assert.Equal(t, "v1", fc.RightRef)
}
