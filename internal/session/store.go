package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"atas-gateway/internal/gateway"
)

// Status is the tri-state session flag dependents consult before making any
// role-based decision of their own.
type Status int

const (
	StatusLoading Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "anonymous"
}

// Backend is the slice of the external API the session lifecycle needs.
// *gateway.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, login, password string) (gateway.LoginResult, error)
	CurrentUser(ctx context.Context, bearer string) (gateway.User, error)
}

// Store owns one gateway session's authenticated user. All mutations go through
// its methods and are serialized by the mutex; overlapping initializations are
// harmless because every write is a full replacement (last write wins).
type Store struct {
	sid     string
	backend Backend
	storage Storage
	log     *slog.Logger

	mu     sync.Mutex
	status Status
	user   *gateway.User
}

// UserPatch is a partial profile update. The access level is deliberately not
// patchable; a role change requires a fresh login.
type UserPatch struct {
	Login *string         `json:"login,omitempty"`
	CNPJ  *string         `json:"cnpj,omitempty"`
	Stats json.RawMessage `json:"stats,omitempty"`
}

// Init re-validates the persisted session with the backend. Absent credentials
// mean anonymous; a backend rejection clears the credentials and signs out
// silently (there is no user-initiated action to report back to). Once settled,
// later calls are no-ops until Logout resets the store.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	if s.status != StatusLoading {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	tok, err := s.storage.Token(ctx, s.sid)
	if err != nil {
		s.log.Warn("session storage unavailable, treating as anonymous", "err", err)
		s.settleFromLoading(nil)
		return
	}
	if tok == "" {
		s.settleFromLoading(nil)
		return
	}

	user, err := s.backend.CurrentUser(ctx, tok)
	if err != nil {
		// Stale or tampered token: drop the credentials and move on.
		s.log.Debug("session re-validation failed", "session_id", s.sid, "err", err)
		if cerr := s.storage.Clear(ctx, s.sid); cerr != nil {
			s.log.Warn("could not clear stale credentials", "err", cerr)
		}
		s.settleFromLoading(nil)
		return
	}
	s.settleFromLoading(&user)
}

// Login exchanges credentials for a session. On success the token and the
// access-level hint are persisted before the profile is loaded; on any failure
// no partial state is committed and the error is returned to the caller. This is
// the only session error ever surfaced to UI code.
func (s *Store) Login(ctx context.Context, login, password string) (string, error) {
	res, err := s.backend.Login(ctx, login, password)
	if err != nil {
		return "", err
	}
	if err := s.storage.Save(ctx, s.sid, res.Token, res.AccessLevel); err != nil {
		return "", err
	}

	user, err := s.backend.CurrentUser(ctx, res.Token)
	if err != nil {
		// Roll the credentials back so no half-open session is left behind.
		if cerr := s.storage.Clear(ctx, s.sid); cerr != nil {
			s.log.Warn("could not roll back credentials", "err", cerr)
		}
		return "", err
	}

	s.settle(&user)
	return res.Token, nil
}

// Logout clears the persisted credentials and resets the store to anonymous.
// The HTTP layer follows up with a full-page redirect, so in-memory state is
// rebuilt from scratch on the next navigation. A profile fetch still in flight
// is not aborted; its late write loses to this one because logout is always
// logically last.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.Clear(ctx, s.sid); err != nil {
		s.log.Warn("could not clear credentials on logout", "err", err)
	}
	s.mu.Lock()
	s.user = nil
	s.status = StatusAnonymous
	s.mu.Unlock()
}

// UpdateUser shallow-merges a partial profile into the session. No-op while
// unauthenticated.
func (s *Store) UpdateUser(patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuthenticated || s.user == nil {
		return
	}
	if patch.Login != nil {
		s.user.Login = *patch.Login
	}
	if patch.CNPJ != nil {
		s.user.CNPJ = *patch.CNPJ
	}
	if len(patch.Stats) > 0 {
		s.user.Stats = patch.Stats
	}
}

// Status returns the tri-state session flag.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// User returns a copy of the authenticated profile.
func (s *Store) User() (gateway.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuthenticated || s.user == nil {
		return gateway.User{}, false
	}
	return *s.user, true
}

func (s *Store) settle(user *gateway.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(user)
}

// settleFromLoading writes the init outcome only while the store is still
// loading, so an init racing a logout cannot resurrect the session.
func (s *Store) settleFromLoading(user *gateway.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusLoading {
		return
	}
	s.apply(user)
}

func (s *Store) apply(user *gateway.User) {
	s.user = user
	if user != nil {
		s.status = StatusAuthenticated
	} else {
		s.status = StatusAnonymous
	}
}
