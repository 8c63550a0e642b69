package state

import (
	"sync"
)

// Manager хранит состояния диалогов в памяти по telegramID
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState текущее состояние или StateNone
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState переводит пользователя в состояние; StateNone удаляет запись вместе с данными
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}
	sm.entry(telegramID).State = state
}

func (sm *Manager) GetData(telegramID int64, key string) (string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return "", false
}

func (sm *Manager) SetData(telegramID int64, key, value string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// entry вызывается под sm.mu
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{Data: make(map[string]string)}
		sm.states[telegramID] = userData
	}
	return userData
}
