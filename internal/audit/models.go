package audit

import "time"

// Event is an immutable, append-only record of a session or access decision.
//
// Invariants:
// - Events are never updated or deleted.
// - Capture is best-effort; the request path never blocks on audit failures.
//
// Storage (Postgres): table audit_events, INSERT-only. Partition by time if
// retention becomes a concern.
type Event struct {
	ID   string    `json:"id" db:"id"`
	Type EventType `json:"type" db:"type"`

	// SessionID is the gateway session the event belongs to.
	SessionID string `json:"session_id,omitempty" db:"session_id"`

	// Login is the authenticated (or attempted) login name, when known.
	Login string `json:"login,omitempty" db:"login"`

	// AccessLevel is the decoded role hint. Informational only: it comes from
	// an unverified token and must never feed an authorization decision.
	AccessLevel string `json:"access_level,omitempty" db:"access_level"`

	// Path is the navigation the event was recorded for.
	Path string `json:"path,omitempty" db:"path"`
	// Target is the redirect destination, when the decision was a redirect.
	Target string `json:"target,omitempty" db:"target"`

	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`
	Message   string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeLoginSucceeded     EventType = "login_succeeded"
	EventTypeLoginFailed        EventType = "login_failed"
	EventTypeLogout             EventType = "logout"
	EventTypeAccessDenied       EventType = "access_denied"
	EventTypeSessionInvalidated EventType = "session_invalidated"
)
