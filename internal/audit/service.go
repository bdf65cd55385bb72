package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events. It is append-only;
// no update or delete methods exist.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records session and access events. Callers treat it as best-effort:
// a failed append is logged by the caller, never propagated to the user.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s == nil || s.repo == nil {
		return nil // auditing not configured; stay out of the request path
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogAccessDenied records a cross-role or unmatched navigation bounce.
func (s *Service) LogAccessDenied(ctx context.Context, sid, level, path, target, ip string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeAccessDenied,
		SessionID:   sid,
		AccessLevel: level,
		Path:        path,
		Target:      target,
		IPAddress:   ip,
	})
}

// LogSessionInvalidated records a corrupted-token cookie clearing.
func (s *Service) LogSessionInvalidated(ctx context.Context, sid, path, ip string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeSessionInvalidated,
		SessionID: sid,
		Path:      path,
		IPAddress: ip,
		Message:   "undecodable session token removed",
	})
}

// LogLogin records a login attempt outcome.
func (s *Service) LogLogin(ctx context.Context, sid, login, level, ip string, ok bool) error {
	t := EventTypeLoginSucceeded
	if !ok {
		t = EventTypeLoginFailed
	}
	return s.Append(ctx, Event{
		Type:        t,
		SessionID:   sid,
		Login:       login,
		AccessLevel: level,
		IPAddress:   ip,
	})
}

// LogLogout records a user-initiated sign-out.
func (s *Service) LogLogout(ctx context.Context, sid, login, ip string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeLogout,
		SessionID: sid,
		Login:     login,
		IPAddress: ip,
	})
}
