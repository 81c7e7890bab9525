package opstate

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_Lifecycle(t *testing.T) {
	m := New()
	assert.Equal(t, Status{Phase: Idle}, m.Status())

	require.NoError(t, m.Begin("add"))
	assert.Equal(t, Status{Phase: Busy, Operation: "add"}, m.Status())

	m.Fail("Error al crear usuario: Error 500: Internal Server Error")
	st := m.Status()
	assert.Equal(t, Idle, st.Phase)
	assert.Empty(t, st.Operation)
	assert.True(t, st.HasError())

	// The error persists across an idle period until the next operation starts.
	require.NoError(t, m.Begin("refresh"))
	assert.False(t, m.Status().HasError())

	m.Succeed()
	assert.Equal(t, Status{Phase: Idle}, m.Status())
}

func TestMachine_BeginWhileBusy(t *testing.T) {
	m := New()
	require.NoError(t, m.Begin("replace"))

	err := m.Begin("remove")
	assert.True(t, errors.Is(err, ErrBusy))
	assert.Equal(t, "replace", m.Status().Operation, "rejected Begin must not change the status")
}

func TestMachine_ClearError(t *testing.T) {
	m := New()
	require.NoError(t, m.Begin("remove"))
	m.Fail("boom")

	m.ClearError()
	assert.Equal(t, Status{Phase: Idle}, m.Status())
}

func TestMachine_Subscribe(t *testing.T) {
	m := New()

	var seen []Status
	unsubscribe := m.Subscribe(func(s Status) { seen = append(seen, s) })

	require.NoError(t, m.Begin("add"))
	m.Fail("boom")
	m.ClearError()
	m.ClearError() // no change, no notification

	require.Len(t, seen, 3)
	assert.Equal(t, Busy, seen[0].Phase)
	assert.Equal(t, "boom", seen[1].LastError)
	assert.False(t, seen[2].HasError())

	unsubscribe()
	require.NoError(t, m.Begin("add"))
	assert.Len(t, seen, 3)
}

func TestMachine_ConcurrentBegin(t *testing.T) {
	m := New()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Begin("add") == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load(), "exactly one operation may enter Busy")
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "busy", Busy.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
