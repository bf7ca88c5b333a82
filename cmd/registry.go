package cmd

import (
	"fmt"
	"sync"

	"github.com/yigger/githd/log"
)

// CommandID uniquely identifies a user-invokable command.
type CommandID string

// Handler is the function signature for command implementations. Arguments
// are whatever the host dispatcher supplies (a path, a committed-file
// descriptor, or nothing).
type Handler func(args ...any) error

// Dispatcher is the host-side command surface the registry binds to. On
// installs a listener for id and returns a function that removes it again;
// installing a second listener for the same id is an error.
type Dispatcher interface {
	On(id CommandID, listener func(args ...any)) (func(), error)
}

// Registry is the process-wide table of command handlers. Handlers are
// registered once at construction time and bound to the host dispatcher once
// per process with BindAll.
type Registry struct {
	mu       sync.Mutex
	handlers map[CommandID]Handler
	order    []CommandID
	unbinds  []func()
	bound    bool
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[CommandID]Handler)}
}

// Register adds a handler for id. Registering the same id twice is an error.
func (r *Registry) Register(id CommandID, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" {
		return fmt.Errorf("command id cannot be empty")
	}
	if h == nil {
		return fmt.Errorf("handler for %q cannot be nil", id)
	}
	if _, exists := r.handlers[id]; exists {
		return fmt.Errorf("command %q already registered", id)
	}
	r.handlers[id] = h
	r.order = append(r.order, id)
	return nil
}

// BindAll installs one dispatcher listener per registered command. The
// listener invokes the handler with the host-supplied arguments and discards
// its result; handler errors are logged, never propagated to the host.
// Binding twice without an intervening Dispose is a duplicate registration.
func (r *Registry) BindAll(d Dispatcher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bound {
		return fmt.Errorf("registry already bound; call Dispose first")
	}
	for _, id := range r.order {
		id := id
		handler := r.handlers[id]
		unbind, err := d.On(id, func(args ...any) {
			if err := handler(args...); err != nil {
				log.ErrorLog.Printf("command %s: %v", id, err)
			}
		})
		if err != nil {
			// Roll back the listeners installed so far.
			for _, u := range r.unbinds {
				u()
			}
			r.unbinds = nil
			return fmt.Errorf("failed to bind %q: %w", id, err)
		}
		r.unbinds = append(r.unbinds, unbind)
	}
	r.bound = true
	return nil
}

// Dispose removes all installed listeners.
func (r *Registry) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.unbinds {
		u()
	}
	r.unbinds = nil
	r.bound = false
}

// Commands returns the registered command ids in registration order.
func (r *Registry) Commands() []CommandID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]CommandID, len(r.order))
	copy(ids, r.order)
	return ids
}
