package app

import (
	"fmt"
	"sync"

	"github.com/yigger/githd/cmd"
)

// Dispatcher is the host command surface: a table of one listener per
// command id. Emit is fire-and-forget; listeners return nothing and the
// emitter never waits on flow completion beyond the call itself.
type Dispatcher struct {
	mu        sync.Mutex
	listeners map[cmd.CommandID]func(args ...any)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[cmd.CommandID]func(args ...any))}
}

// On installs a listener for id and returns its remover. A second listener
// for the same id is a duplicate registration.
func (d *Dispatcher) On(id cmd.CommandID, listener func(args ...any)) (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.listeners[id]; exists {
		return nil, fmt.Errorf("listener for %q already installed", id)
	}
	d.listeners[id] = listener
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}, nil
}

// Emit invokes the listener bound to id, if any.
func (d *Dispatcher) Emit(id cmd.CommandID, args ...any) {
	d.mu.Lock()
	listener := d.listeners[id]
	d.mu.Unlock()
	if listener != nil {
		listener(args...)
	}
}
