package statemachine_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/statemachine"
)

type state string
type event string

const (
	idle    state = "idle"
	running state = "running"
	done    state = "done"

	start  event = "start"
	finish event = "finish"
	abort  event = "abort"
)

func newMachine(opts ...statemachine.Option[state, event]) *statemachine.Machine[state, event] {
	base := []statemachine.Option[state, event]{
		statemachine.WithTransition[state, event](idle, start, running),
		statemachine.WithTransition[state, event](running, finish, done),
		statemachine.WithTransition[state, event](running, abort, idle),
	}
	return statemachine.New(idle, append(base, opts...)...)
}

func TestMachine_Fire(t *testing.T) {
	t.Run("valid transitions", func(t *testing.T) {
		m := newMachine()
		assert.Equal(t, idle, m.Current())

		to, err := m.Fire(start)
		require.NoError(t, err)
		assert.Equal(t, running, to)

		to, err = m.Fire(finish)
		require.NoError(t, err)
		assert.Equal(t, done, to)
		assert.True(t, m.Is(done))
	})

	t.Run("unknown transition keeps state", func(t *testing.T) {
		m := newMachine()
		to, err := m.Fire(finish)
		require.Error(t, err)
		assert.True(t, statemachine.IsNoTransition(err))
		assert.Equal(t, idle, to)
		assert.Equal(t, idle, m.Current())
	})

	t.Run("guards select first passing transition", func(t *testing.T) {
		allowed := false
		m := statemachine.New(idle,
			statemachine.WithTransition[state, event](idle, start, done, func(state, event) bool { return allowed }),
		)

		_, err := m.Fire(start)
		assert.True(t, statemachine.IsTransitionRejected(err))
		assert.False(t, m.CanFire(start))

		allowed = true
		assert.True(t, m.CanFire(start))
		to, err := m.Fire(start)
		require.NoError(t, err)
		assert.Equal(t, done, to)
	})
}

func TestMachine_Listeners(t *testing.T) {
	var got []string
	m := newMachine(statemachine.WithListener[state, event](func(from, to state, ev event) {
		got = append(got, string(from)+">"+string(to)+":"+string(ev))
	}))

	_, _ = m.Fire(start)
	_, _ = m.Fire(abort)
	_, _ = m.Fire(finish) // rejected, no notification

	assert.Equal(t, []string{"idle>running:start", "running>idle:abort"}, got)
}

func TestMachine_ListenerCanReenter(t *testing.T) {
	m := newMachine()
	m.OnTransition(func(from, to state, ev event) {
		if to == running {
			_, _ = m.Fire(finish)
		}
	})

	_, err := m.Fire(start)
	require.NoError(t, err)
	assert.Equal(t, done, m.Current())
}

func TestMachine_Reset(t *testing.T) {
	m := newMachine()
	_, _ = m.Fire(start)
	m.Reset()
	assert.Equal(t, idle, m.Current())
}

func TestMachine_ConcurrentFireIsAtomic(t *testing.T) {
	m := newMachine()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Fire(start); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
