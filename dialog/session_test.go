package dialog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionsLifecycle(t *testing.T) {
	s := NewSessions()

	assert.False(t, s.InProgress(7))
	assert.Equal(t, Session{}, s.Get(7))

	s.Put(7, Session{Phase: PhaseAwaitingName, Description: "desc"})
	assert.True(t, s.InProgress(7))
	assert.Equal(t, PhaseAwaitingName, s.Get(7).Phase)
	assert.False(t, s.InProgress(42))

	s.Clear(7)
	assert.False(t, s.InProgress(7))
	assert.Equal(t, Session{}, s.Get(7))
}

func TestSessionsPutIdleClears(t *testing.T) {
	s := NewSessions()
	s.Put(7, Session{Phase: PhaseAwaitingSection, ItemName: "Pasta"})
	s.Put(7, Session{})
	assert.False(t, s.InProgress(7))
}

func TestSessionsConcurrentAccess(t *testing.T) {
	s := NewSessions()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Put(id, Session{Phase: PhaseAwaitingName})
			_ = s.Get(id)
			_ = s.InProgress(id)
			s.Clear(id)
		}(int64(i))
	}
	wg.Wait()
	for i := int64(0); i < 32; i++ {
		assert.False(t, s.InProgress(i))
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "awaiting_name", PhaseAwaitingName.String())
	assert.Equal(t, "awaiting_section", PhaseAwaitingSection.String())
}
