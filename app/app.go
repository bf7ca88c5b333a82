package app

import (
	"fmt"
	"os"

	"github.com/yigger/githd/cmd"
	"github.com/yigger/githd/config"
	"github.com/yigger/githd/git"
	"github.com/yigger/githd/log"
	"github.com/yigger/githd/ui"
	"github.com/yigger/githd/view"
)

// paletteEntry names a command for the outer palette.
type paletteEntry struct {
	id    cmd.CommandID
	title string
}

var palette = []paletteEntry{
	{cmd.CmdViewHistory, "View history"},
	{cmd.CmdViewAllHistory, "View entire history"},
	{cmd.CmdViewBranchHistory, "View branch history"},
	{cmd.CmdViewAuthorHistory, "View history by author"},
	{cmd.CmdDiffBranches, "Diff branches"},
	{cmd.CmdInputRef, "Input a reference"},
	{cmd.CmdToggleExpressMode, "Toggle express mode"},
	{cmd.CmdClearContext, "Clear the current view"},
}

// Run wires the command center together and drives the command palette loop
// until the user quits.
func Run(paths []string) error {
	state := config.LoadState()
	if len(paths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		paths = []string{cwd}
	}
	catalog := git.NewService(append(paths, state.RecentRepos...)...)

	store := view.NewStore()
	store.SetExpressMode(state.ExpressMode)
	ui.NewRenderer(store, os.Stdout)

	prompter := ui.NewPrompter()
	registry := cmd.NewRegistry()
	if _, err := cmd.NewCenter(registry, catalog, store, prompter, state, FileOpener{}); err != nil {
		return fmt.Errorf("failed to build command center: %w", err)
	}

	dispatcher := NewDispatcher()
	if err := registry.BindAll(dispatcher); err != nil {
		return fmt.Errorf("failed to bind commands: %w", err)
	}
	defer registry.Dispose()

	items := make([]cmd.PickItem, 0, len(palette))
	for _, e := range palette {
		items = append(items, cmd.PickItem{
			Kind:        cmd.RealChoice,
			Label:       e.title,
			Description: string(e.id),
		})
	}

	for {
		item, ok, err := prompter.Pick("githd", items)
		if err != nil {
			return err
		}
		if !ok {
			// Palette dismissed: quit.
			return nil
		}
		id := cmd.CommandID(item.Description)
		log.InfoLog.Printf("command: %s", id)
		dispatcher.Emit(id)
	}
}
