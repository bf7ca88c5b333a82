package view

import (
	"errors"
	"sync"
)

// ErrMissingRightRef rejects a files context with no right-hand reference.
var ErrMissingRightRef = errors.New("files context requires a right reference")

// EventKind identifies what a store notification is about.
type EventKind int

const (
	EventHistory EventKind = iota
	EventFiles
	EventExpress
)

// Event is delivered to subscribers after every publish. FullReload is only
// set for history events, and only by the view-all-history action.
type Event struct {
	Kind       EventKind
	FullReload bool
}

// Store owns the single current view context. Publishes replace the prior
// value atomically; the last publish wins when flows race.
type Store struct {
	mu      sync.Mutex
	history *HistoryContext
	files   *FilesContext
	express bool
	subs    []func(Event)
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to run after every publish. Subscribers are invoked
// outside the store lock, in registration order.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// PublishHistory replaces the current history context.
func (s *Store) PublishHistory(ctx HistoryContext, fullReload bool) {
	s.mu.Lock()
	c := ctx
	s.history = &c
	s.mu.Unlock()
	s.notify(Event{Kind: EventHistory, FullReload: fullReload})
}

// PublishFiles replaces the current files context. A context with no right
// reference is rejected, regardless of the left side.
func (s *Store) PublishFiles(ctx FilesContext) error {
	if ctx.RightRef == "" {
		return ErrMissingRightRef
	}
	s.mu.Lock()
	c := ctx
	s.files = &c
	s.mu.Unlock()
	s.notify(Event{Kind: EventFiles})
	return nil
}

// Clear publishes the all-null files context, telling the view layer to show
// nothing. This is the one publish allowed to omit the right reference.
func (s *Store) Clear() {
	s.mu.Lock()
	s.files = &FilesContext{}
	s.mu.Unlock()
	s.notify(Event{Kind: EventFiles})
}

// History returns a copy of the current history context, or nil if none has
// been published.
func (s *Store) History() *HistoryContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return nil
	}
	c := *s.history
	return &c
}

// Files returns a copy of the current files context, or nil if none has been
// published.
func (s *Store) Files() *FilesContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		return nil
	}
	c := *s.files
	return &c
}

// SetExpressMode flips the express-mode flag.
func (s *Store) SetExpressMode(on bool) {
	s.mu.Lock()
	s.express = on
	s.mu.Unlock()
	s.notify(Event{Kind: EventExpress})
}

func (s *Store) ExpressMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.express
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}
