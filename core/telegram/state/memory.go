package state

import "sync"

// Memory is an in-process session store keyed by chat id.
type Memory[S any] struct {
	mu       sync.RWMutex
	sessions map[int64]S
}

// NewMemory constructs an empty Memory store.
func NewMemory[S any]() *Memory[S] {
	return &Memory[S]{sessions: make(map[int64]S)}
}

// Load returns the session of chatID, if any.
func (m *Memory[S]) Load(chatID int64) (S, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	return s, ok
}

// Store replaces the session of chatID.
func (m *Memory[S]) Store(chatID int64, s S) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = s
}

// Delete removes the session of chatID.
func (m *Memory[S]) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

// Len reports how many chats have a session.
func (m *Memory[S]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
