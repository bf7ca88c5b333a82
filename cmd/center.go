package cmd

import (
	"errors"
	"fmt"

	"github.com/yigger/githd/config"
	"github.com/yigger/githd/git"
	"github.com/yigger/githd/log"
	"github.com/yigger/githd/view"
)

// Command identifiers exposed to the host dispatcher.
const (
	CmdClearContext      CommandID = "clear-context"
	CmdViewHistory       CommandID = "view-history"
	CmdViewAllHistory    CommandID = "view-all-history"
	CmdViewFileHistory   CommandID = "view-file-history"
	CmdViewLineHistory   CommandID = "view-line-history"
	CmdViewBranchHistory CommandID = "view-branch-history"
	CmdViewAuthorHistory CommandID = "view-author-history"
	CmdDiffBranches      CommandID = "diff-branches"
	CmdDiffFile          CommandID = "diff-file"
	CmdInputRef          CommandID = "input-ref"
	CmdOpenCommittedFile CommandID = "open-committed-file"
	CmdToggleExpressMode CommandID = "toggle-express-mode"
)

// ErrNoHistoryContext is the contract violation of requesting author history
// before any history context exists. Correct command ordering makes it
// unreachable; it is fatal to the flow, not user-recoverable.
var ErrNoHistoryContext = errors.New("author history requested without a history context")

const msgInvalidSelection = "Invalid selection"
const msgNoRepository = "No repository available"

// Editor is the text-editor collaborator that shows committed file contents.
type Editor interface {
	OpenCommittedFile(file git.CommittedFile) error
}

// Center owns the command handlers. It composes the pick-list builder, the
// resolver and the context store; every handler is registered on the given
// registry at construction time.
type Center struct {
	catalog  git.Catalog
	store    *view.Store
	resolver *Resolver
	ui       Interactor
	state    *config.State
	editor   Editor
}

// NewCenter builds a Center and registers its handlers.
func NewCenter(reg *Registry, catalog git.Catalog, store *view.Store, ui Interactor, state *config.State, editor Editor) (*Center, error) {
	c := &Center{
		catalog:  catalog,
		store:    store,
		resolver: NewResolver(ui),
		ui:       ui,
		state:    state,
		editor:   editor,
	}
	type entry struct {
		id CommandID
		h  Handler
	}
	for _, e := range []entry{
		{CmdClearContext, c.clearContext},
		{CmdViewHistory, c.viewHistory},
		{CmdViewAllHistory, c.viewAllHistory},
		{CmdViewFileHistory, c.viewFileHistory},
		{CmdViewLineHistory, c.viewLineHistory},
		{CmdViewBranchHistory, c.viewBranchHistory},
		{CmdViewAuthorHistory, c.viewAuthorHistory},
		{CmdDiffBranches, c.diffBranches},
		{CmdDiffFile, c.diffFile},
		{CmdInputRef, c.inputRef},
		{CmdOpenCommittedFile, c.openCommittedFile},
		{CmdToggleExpressMode, c.toggleExpressMode},
	} {
		if err := reg.Register(e.id, e.h); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// selectRepo resolves the repository for a command: an explicit path wins,
// otherwise the user picks among the known repositories (skipping the prompt
// when there is only one). ok=false means the flow should silently stop.
func (c *Center) selectRepo(path string) (*git.Repository, bool, error) {
	if path != "" {
		repo, err := c.catalog.RepositoryForPath(path)
		if err != nil {
			return nil, false, err
		}
		if repo == nil {
			c.ui.Notify(msgNoRepository)
			return nil, false, nil
		}
		return repo, true, nil
	}
	items, err := BuildRepoChoices(c.catalog.KnownRepositories())
	if err != nil {
		if errors.Is(err, ErrNoRepository) {
			c.ui.Notify(msgNoRepository)
			return nil, false, nil
		}
		return nil, false, err
	}
	return c.resolver.ResolveRepo(items, "Select a repository")
}

// resolveRef runs one ref resolution round against repo.
func (c *Center) resolveRef(repo *git.Repository, pickTitle, inputTitle string, allowManual, markCurrent bool) (Outcome, error) {
	items, err := BuildRefChoices(c.catalog, repo, allowManual, markCurrent)
	if err != nil {
		return Outcome{}, err
	}
	return c.resolver.ResolveOne(items, pickTitle, inputTitle)
}

func (c *Center) rememberRepo(repo *git.Repository) {
	if c.state == nil {
		return
	}
	c.state.TouchRepo(repo.Path)
	if err := c.state.Save(); err != nil {
		log.WarningLog.Printf("failed to persist recent repositories: %v", err)
	}
}

func (c *Center) clearContext(args ...any) error {
	c.store.Clear()
	return nil
}

func (c *Center) viewHistory(args ...any) error {
	repo, ok, err := c.selectRepo(pathArg(args))
	if err != nil || !ok {
		return err
	}
	c.rememberRepo(repo)
	c.store.PublishHistory(view.HistoryContext{Repo: repo}, false)
	return nil
}

// viewAllHistory reuses the current history repository when one exists; the
// full-reload signal is what distinguishes it from a plain view-history.
func (c *Center) viewAllHistory(args ...any) error {
	var repo *git.Repository
	if hc := c.store.History(); hc != nil {
		repo = hc.Repo
	}
	if repo == nil {
		var ok bool
		var err error
		repo, ok, err = c.selectRepo("")
		if err != nil || !ok {
			return err
		}
	}
	c.store.PublishHistory(view.HistoryContext{Repo: repo, AllHistory: true}, true)
	return nil
}

func (c *Center) viewFileHistory(args ...any) error {
	path := pathArg(args)
	repo, ok, err := c.selectRepo(path)
	if err != nil || !ok {
		return err
	}
	c.store.PublishHistory(view.HistoryContext{Repo: repo, SpecifiedPath: path}, false)
	return nil
}

func (c *Center) viewLineHistory(args ...any) error {
	path := pathArg(args)
	line := 0
	if len(args) > 1 {
		line, _ = args[1].(int)
	}
	repo, ok, err := c.selectRepo(path)
	if err != nil || !ok {
		return err
	}
	c.store.PublishHistory(view.HistoryContext{Repo: repo, SpecifiedPath: path, Line: line}, false)
	return nil
}

func (c *Center) viewBranchHistory(args ...any) error {
	repo, ok, err := c.selectRepo(pathArg(args))
	if err != nil || !ok {
		return err
	}
	outcome, err := c.resolveRef(repo,
		"Select a branch to view its history",
		"Input a reference to view its history", true, true)
	if err != nil || !outcome.Resolved {
		return err
	}
	c.store.PublishHistory(view.HistoryContext{Repo: repo, Branch: refValue(outcome)}, false)
	return nil
}

func (c *Center) viewAuthorHistory(args ...any) error {
	hc := c.store.History()
	if hc == nil {
		return ErrNoHistoryContext
	}
	items, err := BuildAuthorChoices(c.catalog, hc.Repo)
	if err != nil {
		return err
	}
	outcome, err := c.resolver.ResolveOne(items, "Select an author to filter the history", "")
	if err != nil || !outcome.Resolved {
		return err
	}
	next := *hc
	// The synthetic "All" author has an empty description; it clears the filter.
	next.Author = outcome.Item.Description
	c.store.PublishHistory(next, false)
	return nil
}

func (c *Center) diffBranches(args ...any) error {
	repo, ok, err := c.selectRepo(pathArg(args))
	if err != nil || !ok {
		return err
	}
	source, err := c.resolveRef(repo,
		"Select a branch to compare",
		"Input a reference to compare", true, true)
	if err != nil {
		return err
	}
	if !source.Resolved {
		c.ui.Notify(msgInvalidSelection)
		return nil
	}
	src := refValue(source)
	target, err := c.resolveRef(repo,
		fmt.Sprintf("Select a branch to compare with %s", src),
		fmt.Sprintf("Input a reference to compare with %s", src), true, true)
	if err != nil {
		return err
	}
	if !target.Resolved {
		c.ui.Notify(msgInvalidSelection)
		return nil
	}
	return c.store.PublishFiles(view.FilesContext{
		Repo:     repo,
		LeftRef:  src,
		RightRef: refValue(target),
	})
}

func (c *Center) diffFile(args ...any) error {
	path := pathArg(args)
	repo, ok, err := c.selectRepo(path)
	if err != nil || !ok {
		return err
	}
	outcome, err := c.resolveRef(repo,
		"Select a reference to diff against",
		"Input a reference to diff against", true, true)
	if err != nil {
		return err
	}
	if !outcome.Resolved {
		c.ui.Notify(msgInvalidSelection)
		return nil
	}
	// LeftRef stays empty: the consumer reads it as rightRef+"~".
	return c.store.PublishFiles(view.FilesContext{
		Repo:          repo,
		RightRef:      refValue(outcome),
		SpecifiedPath: path,
	})
}

func (c *Center) inputRef(args ...any) error {
	repo, ok, err := c.selectRepo(pathArg(args))
	if err != nil || !ok {
		return err
	}
	outcome, err := c.resolveRef(repo,
		"Select a reference to view",
		"Input a reference to view", true, true)
	if err != nil || !outcome.Resolved {
		return err
	}
	return c.store.PublishFiles(view.FilesContext{Repo: repo, RightRef: refValue(outcome)})
}

func (c *Center) openCommittedFile(args ...any) error {
	if len(args) == 0 {
		return fmt.Errorf("open-committed-file requires a committed file descriptor")
	}
	file, ok := args[0].(git.CommittedFile)
	if !ok {
		return fmt.Errorf("open-committed-file: unexpected argument %T", args[0])
	}
	return c.editor.OpenCommittedFile(file)
}

func (c *Center) toggleExpressMode(args ...any) error {
	on := !c.store.ExpressMode()
	c.store.SetExpressMode(on)
	if c.state != nil {
		c.state.ExpressMode = on
		if err := c.state.Save(); err != nil {
			log.WarningLog.Printf("failed to persist express mode: %v", err)
		}
	}
	return nil
}

// pathArg extracts the optional leading path argument.
func pathArg(args []any) string {
	if len(args) > 0 {
		if p, ok := args[0].(string); ok {
			return p
		}
	}
	return ""
}

// refValue strips the current-branch marker (or its alignment padding) from
// a resolved ref label. Free-text values pass through untouched.
func refValue(o Outcome) string {
	return trimMark(o.Value)
}
