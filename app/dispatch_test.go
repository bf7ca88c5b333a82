package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigger/githd/cmd"
)

func TestDispatcherOnAndEmit(t *testing.T) {
	d := NewDispatcher()
	var got []any
	unbind, err := d.On("view-history", func(args ...any) { got = args })
	require.NoError(t, err)

	d.Emit("view-history", "/work/githd")
	assert.Equal(t, []any{"/work/githd"}, got)

	unbind()
	got = nil
	d.Emit("view-history", "/work/githd")
	assert.Nil(t, got)
}

func TestDispatcherRejectsDuplicateListeners(t *testing.T) {
	d := NewDispatcher()
	_, err := d.On("diff-file", func(args ...any) {})
	require.NoError(t, err)
	_, err = d.On("diff-file", func(args ...any) {})
	require.Error(t, err)
}

func TestDispatcherEmitUnknownIDIsNoop(t *testing.T) {
	d := NewDispatcher()
	// Must not panic.
	d.Emit(cmd.CommandID("nope"))
}

func TestRegistryBindsToDispatcher(t *testing.T) {
	d := NewDispatcher()
	reg := cmd.NewRegistry()
	fired := false
	require.NoError(t, reg.Register("clear-context", func(args ...any) error {
		fired = true
		return nil
	}))
	require.NoError(t, reg.BindAll(d))
	defer reg.Dispose()

	d.Emit("clear-context")
	assert.True(t, fired)
}
