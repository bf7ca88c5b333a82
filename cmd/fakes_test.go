package cmd

import (
	"fmt"

	"github.com/yigger/githd/git"
)

// fakeCatalog is a scripted Catalog for handler and builder tests.
type fakeCatalog struct {
	refs         []git.Ref
	current      string
	authors      []git.Author
	repos        []*git.Repository
	reposForPath map[string]*git.Repository

	refsErr    error
	currentErr error
	authorsErr error
}

func (f *fakeCatalog) ListRefs(*git.Repository) ([]git.Ref, error) {
	return f.refs, f.refsErr
}

func (f *fakeCatalog) CurrentBranch(*git.Repository) (string, error) {
	return f.current, f.currentErr
}

func (f *fakeCatalog) ListAuthors(*git.Repository) ([]git.Author, error) {
	return f.authors, f.authorsErr
}

func (f *fakeCatalog) RepositoryForPath(path string) (*git.Repository, error) {
	return f.reposForPath[path], nil
}

func (f *fakeCatalog) KnownRepositories() []*git.Repository {
	return f.repos
}

// pickResponse scripts one Pick call: cancel, or select the item whose
// trimmed label equals label.
type pickResponse struct {
	cancel bool
	label  string
}

// inputResponse scripts one Input call.
type inputResponse struct {
	cancel bool
	text   string
}

// fakeInteractor replays scripted responses and records every prompt.
type fakeInteractor struct {
	picks  []pickResponse
	inputs []inputResponse

	pickTitles  []string
	inputTitles []string
	pickedItems [][]PickItem
	notices     []string
}

func (f *fakeInteractor) Pick(title string, items []PickItem) (PickItem, bool, error) {
	f.pickTitles = append(f.pickTitles, title)
	f.pickedItems = append(f.pickedItems, items)
	if len(f.picks) == 0 {
		return PickItem{}, false, fmt.Errorf("unexpected Pick(%q)", title)
	}
	r := f.picks[0]
	f.picks = f.picks[1:]
	if r.cancel {
		return PickItem{}, false, nil
	}
	for _, item := range items {
		if trimMark(item.Label) == r.label || item.Label == r.label {
			return item, true, nil
		}
	}
	return PickItem{}, false, fmt.Errorf("no item labelled %q in Pick(%q)", r.label, title)
}

func (f *fakeInteractor) Input(title, placeholder string) (string, bool, error) {
	f.inputTitles = append(f.inputTitles, title)
	if len(f.inputs) == 0 {
		return "", false, fmt.Errorf("unexpected Input(%q)", title)
	}
	r := f.inputs[0]
	f.inputs = f.inputs[1:]
	if r.cancel {
		return "", false, nil
	}
	return r.text, true, nil
}

func (f *fakeInteractor) Notify(message string) {
	f.notices = append(f.notices, message)
}

// fakeDispatcher is an in-memory host dispatcher for registry tests.
type fakeDispatcher struct {
	listeners map[CommandID]func(args ...any)
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{listeners: make(map[CommandID]func(args ...any))}
}

func (d *fakeDispatcher) On(id CommandID, listener func(args ...any)) (func(), error) {
	if _, exists := d.listeners[id]; exists {
		return nil, fmt.Errorf("listener for %q already installed", id)
	}
	d.listeners[id] = listener
	return func() { delete(d.listeners, id) }, nil
}

func (d *fakeDispatcher) emit(id CommandID, args ...any) {
	if l := d.listeners[id]; l != nil {
		l(args...)
	}
}
