package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_Lifecycle(t *testing.T) {
	sm := NewManager()
	const id = int64(10)

	assert.Equal(t, StateNone, sm.GetState(id))

	sm.SetState(id, StateLoginEmail)
	sm.SetData(id, KeyEmail, "a@b.c")
	assert.Equal(t, StateLoginEmail, sm.GetState(id))

	sm.SetState(id, StateLoginPassword)
	email, ok := sm.GetData(id, KeyEmail)
	assert.True(t, ok)
	assert.Equal(t, "a@b.c", email)

	sm.SetState(id, StateNone)
	_, ok = sm.GetData(id, KeyEmail)
	assert.False(t, ok)

	sm.SetData(id, KeyEmail, "x")
	sm.ClearState(id)
	assert.Equal(t, StateNone, sm.GetState(id))
}

func TestManager_Concurrent(t *testing.T) {
	sm := NewManager()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateLoginEmail)
			sm.SetData(id, KeyEmail, "e")
			sm.GetState(id)
			sm.ClearState(id)
		}(i)
	}
	wg.Wait()
	assert.Empty(t, sm.states)
}
