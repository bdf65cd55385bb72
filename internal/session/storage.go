package session

import (
	"context"
	"sync"
)

// Storage persists a session's credentials between navigations and process
// restarts. It is the server-side stand-in for the browser's key-value storage:
// one token plus one redundant access-level hint per gateway session.
type Storage interface {
	// Token returns the persisted token for sid, "" when absent.
	Token(ctx context.Context, sid string) (string, error)
	// Save persists the token and the access-level hint atomically.
	Save(ctx context.Context, sid, token, accessLevel string) error
	// Clear removes both values. Clearing an absent session is not an error.
	Clear(ctx context.Context, sid string) error
}

// MemoryStorage keeps credentials in-process. Useful for tests; a deployed
// gateway should use RedisStorage so sessions survive restarts.
type MemoryStorage struct {
	mu     sync.Mutex
	tokens map[string]string
	levels map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		tokens: make(map[string]string),
		levels: make(map[string]string),
	}
}

func (m *MemoryStorage) Token(ctx context.Context, sid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[sid], nil
}

func (m *MemoryStorage) Save(ctx context.Context, sid, token, accessLevel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[sid] = token
	m.levels[sid] = accessLevel
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, sid)
	delete(m.levels, sid)
	return nil
}

// AccessLevel exposes the stored hint for test assertions.
func (m *MemoryStorage) AccessLevel(sid string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[sid]
}
