package cmd

import (
	"strings"

	"github.com/yigger/githd/git"
)

// Interactor is the prompt surface the resolver drives. Pick and Input block
// until the user responds; ok=false means the prompt was dismissed.
type Interactor interface {
	Pick(title string, items []PickItem) (PickItem, bool, error)
	Input(title, placeholder string) (string, bool, error)
	Notify(message string)
}

// Outcome is the result of one resolution round. Value is the picked label
// or the trimmed free-text entry; Item is the picked item when one was
// picked. A zero Outcome is Aborted.
type Outcome struct {
	Resolved bool
	Value    string
	Item     PickItem
}

// aborted is the terminal outcome for any dismissed or empty round.
var aborted = Outcome{}

// roundState is the resolver's per-round state machine.
type roundState int

const (
	statePresent roundState = iota
	stateFreeText
	stateDone
)

// Resolver runs present/interpret rounds over pre-built pick items. It never
// queries the catalog itself.
type Resolver struct {
	ui Interactor
}

func NewResolver(ui Interactor) *Resolver {
	return &Resolver{ui: ui}
}

// ResolveOne runs a single resolution round: present the items, branch on
// the response, and fall through to a free-text prompt when the manual-entry
// sentinel is chosen. Cancelling at any step yields an Aborted outcome and
// nothing else happens.
func (r *Resolver) ResolveOne(items []PickItem, pickTitle, inputTitle string) (Outcome, error) {
	outcome := aborted
	state := statePresent
	for state != stateDone {
		switch state {
		case statePresent:
			item, ok, err := r.ui.Pick(pickTitle, items)
			if err != nil {
				return aborted, err
			}
			if !ok {
				state = stateDone
				break
			}
			switch item.Kind {
			case ManualEntrySentinel:
				state = stateFreeText
			default:
				outcome = Outcome{Resolved: true, Value: item.Label, Item: item}
				state = stateDone
			}
		case stateFreeText:
			text, ok, err := r.ui.Input(inputTitle, "")
			if err != nil {
				return aborted, err
			}
			text = strings.TrimSpace(text)
			if ok && text != "" {
				outcome = Outcome{Resolved: true, Value: text}
			}
			state = stateDone
		}
	}
	return outcome, nil
}

// ResolveRepo interprets repository choices. A single-item list resolves
// without presenting anything; otherwise the user picks. The second return
// is false when the user cancelled.
func (r *Resolver) ResolveRepo(items []PickItem, title string) (*git.Repository, bool, error) {
	if len(items) == 1 && items[0].Kind == RepoChoice {
		return items[0].Repo, true, nil
	}
	item, ok, err := r.ui.Pick(title, items)
	if err != nil || !ok {
		return nil, false, err
	}
	if item.Kind != RepoChoice {
		return nil, false, nil
	}
	return item.Repo, true, nil
}
