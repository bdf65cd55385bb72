package roles

import "strings"

// Access levels. Keep these stable; they are part of the session and routing contracts.
const (
	Client = "CLIENT"
	Notary = "NOTARY"
	Admin  = "ADMIN"
)

// Normalize maps any accepted spelling ("client", "Notary", "ADMIN") to the canonical
// uppercase form. Comparison against the constants above must always go through
// Normalize; it is the single case-normalization strategy for both enforcement layers.
func Normalize(level string) string {
	return strings.ToUpper(strings.TrimSpace(level))
}

// IsClient reports whether level identifies a company (empresa) session.
func IsClient(level string) bool {
	return Normalize(level) == Client
}

// IsNotaryLevel reports whether level grants notary-side access.
// ADMIN is a superset of NOTARY for routing purposes.
func IsNotaryLevel(level string) bool {
	switch Normalize(level) {
	case Notary, Admin:
		return true
	}
	return false
}

// Known reports whether level is one of the supported access levels.
func Known(level string) bool {
	switch Normalize(level) {
	case Client, Notary, Admin:
		return true
	}
	return false
}
