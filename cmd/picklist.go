package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yigger/githd/git"
)

// ErrNoRepository is reported when repository selection has nothing to offer.
var ErrNoRepository = errors.New("no repository available")

// PickItemKind discriminates the pick-item union.
type PickItemKind int

const (
	// RealChoice is a concrete selectable value (a ref or an author).
	RealChoice PickItemKind = iota
	// ManualEntrySentinel triggers a free-text prompt when selected. It
	// never carries a repository or a reference.
	ManualEntrySentinel
	// RepoChoice selects a repository.
	RepoChoice
)

// PickItem is one row of a selection list.
type PickItem struct {
	Kind        PickItemKind
	Label       string
	Description string
	Repo        *git.Repository // set only for RepoChoice
}

// manualEntryLabel is what the sentinel row shows.
const manualEntryLabel = "Enter a reference manually..."

// currentMark prefixes the ref matching the current branch. Unmarked rows
// get the same display width of no-break spaces so labels stay aligned even
// in surfaces that collapse ordinary whitespace.
const currentMark = "✓ "

var currentPad = strings.Repeat(" ", runewidth.StringWidth(currentMark))

// trimMark removes the current-branch marker or its alignment padding from a
// decorated label, recovering the plain ref name.
func trimMark(label string) string {
	label = strings.TrimPrefix(label, currentMark)
	return strings.TrimPrefix(label, currentPad)
}

// BuildRefChoices maps the repository's refs to pick items. Descriptions
// encode the ref kind; when markCurrent is set, the first ref whose name
// equals the current branch is visually marked and every other row is padded
// to match. A detached HEAD marks nothing. When allowManualEntry is set a
// manual-entry sentinel is prepended.
func BuildRefChoices(cat git.Catalog, repo *git.Repository, allowManualEntry, markCurrent bool) ([]PickItem, error) {
	refs, err := cat.ListRefs(repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}
	current := ""
	if markCurrent {
		current, err = cat.CurrentBranch(repo)
		if err != nil {
			return nil, fmt.Errorf("failed to read current branch: %w", err)
		}
	}

	items := make([]PickItem, 0, len(refs)+1)
	if allowManualEntry {
		items = append(items, PickItem{Kind: ManualEntrySentinel, Label: manualEntryLabel})
	}
	marked := false
	for _, ref := range refs {
		label := ref.Name
		if label == "" {
			label = ref.Hash
		}
		var desc string
		switch ref.Kind {
		case git.RefTag:
			desc = "Tag at " + ref.Hash
		case git.RefRemoteHead:
			desc = "Remote branch at " + ref.Hash
		default:
			desc = ref.Hash
		}
		if markCurrent {
			if !marked && current != "" && label == current {
				label = currentMark + label
				marked = true
			} else {
				label = currentPad + label
			}
		}
		items = append(items, PickItem{Kind: RealChoice, Label: label, Description: desc})
	}
	return items, nil
}

// BuildRepoChoices maps repositories to pick items. Zero repositories is
// ErrNoRepository; exactly one short-circuits to that single item so callers
// can skip the prompt.
func BuildRepoChoices(repos []*git.Repository) ([]PickItem, error) {
	if len(repos) == 0 {
		return nil, ErrNoRepository
	}
	items := make([]PickItem, 0, len(repos))
	for _, repo := range repos {
		items = append(items, PickItem{
			Kind:        RepoChoice,
			Label:       repo.Name(),
			Description: repo.Path,
			Repo:        repo,
		})
	}
	return items, nil
}

// BuildAuthorChoices maps the repository's authors to pick items, with the
// synthetic "All" author (empty email) first.
func BuildAuthorChoices(cat git.Catalog, repo *git.Repository) ([]PickItem, error) {
	authors, err := cat.ListAuthors(repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	items := make([]PickItem, 0, len(authors)+1)
	items = append(items, PickItem{Kind: RealChoice, Label: "All"})
	for _, a := range authors {
		items = append(items, PickItem{Kind: RealChoice, Label: a.Name, Description: a.Email})
	}
	return items, nil
}
