package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/yigger/githd/view"
)

var (
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
)

// Renderer is a minimal stand-in for the rendering subsystem: it subscribes
// to the context store and prints a one-line summary after every publish.
type Renderer struct {
	store *view.Store
	out   io.Writer
}

func NewRenderer(store *view.Store, out io.Writer) *Renderer {
	r := &Renderer{store: store, out: out}
	store.Subscribe(r.onEvent)
	return r
}

func (r *Renderer) onEvent(ev view.Event) {
	switch ev.Kind {
	case view.EventHistory:
		r.renderHistory(r.store.History(), ev.FullReload)
	case view.EventFiles:
		r.renderFiles(r.store.Files())
	case view.EventExpress:
		fmt.Fprintf(r.out, "%s %v\n", labelStyle.Render("express mode:"), r.store.ExpressMode())
	}
}

func (r *Renderer) renderHistory(hc *view.HistoryContext, fullReload bool) {
	if hc == nil || hc.Repo == nil {
		return
	}
	line := fmt.Sprintf("history %s", hc.Repo.Name())
	if hc.Branch != "" {
		line += " @" + hc.Branch
	}
	if hc.SpecifiedPath != "" {
		line += " " + hc.SpecifiedPath
		if hc.Line > 0 {
			line += fmt.Sprintf(":%d", hc.Line)
		}
	}
	if hc.Author != "" {
		line += " by " + hc.Author
	}
	if hc.AllHistory {
		line += " (all)"
	}
	if fullReload {
		line += " [full reload]"
	}
	fmt.Fprintln(r.out, contextStyle.Render(line))
}

func (r *Renderer) renderFiles(fc *view.FilesContext) {
	if fc == nil || fc.Repo == nil {
		fmt.Fprintln(r.out, contextStyle.Render("cleared"))
		return
	}
	left := fc.LeftRef
	if left == "" {
		// Parent-of-right convention for a one-sided context.
		left = fc.RightRef + "~"
	}
	line := fmt.Sprintf("diff %s %s..%s", fc.Repo.Name(), left, fc.RightRef)
	if fc.SpecifiedPath != "" {
		line += " " + fc.SpecifiedPath
	}
	fmt.Fprintln(r.out, contextStyle.Render(line))
}
