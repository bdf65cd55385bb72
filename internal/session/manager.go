package session

import (
	"log/slog"
	"sync"
)

// Manager hands out the session-state object for a gateway session ID. It is
// built once in main and passed explicitly to everything that reads or mutates
// session state; there is no ambient singleton.
type Manager struct {
	backend Backend
	storage Storage
	log     *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(backend Backend, storage Storage, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		backend: backend,
		storage: storage,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// Store returns the state object for sid, creating it in the loading state on
// first sight. Browser tabs sharing a session cookie share the store; separate
// gateway replicas converge only through persisted storage, read at init.
func (m *Manager) Store(sid string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[sid]; ok {
		return st
	}
	st := &Store{
		sid:     sid,
		backend: m.backend,
		storage: m.storage,
		log:     m.log,
		status:  StatusLoading,
	}
	m.stores[sid] = st
	return st
}

// Drop forgets the in-memory state for sid. Used after logout so the next
// navigation rebuilds the store from persisted storage, mirroring the
// full-page reload that follows a logout.
func (m *Manager) Drop(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sid)
}
