package routes

import (
	"strings"

	"atas-gateway/internal/roles"
)

// Class is the access requirement of a navigation path.
type Class int

const (
	// ClassBypass marks asset and gateway-internal paths that sit outside access logic.
	ClassBypass Class = iota
	ClassPublic
	ClassNotaryOnly
	ClassClientOnly
	// ClassUnknown means no rule matched; the decision table denies by default.
	ClassUnknown
)

func (c Class) String() string {
	switch c {
	case ClassBypass:
		return "bypass"
	case ClassPublic:
		return "public"
	case ClassNotaryOnly:
		return "notary_only"
	case ClassClientOnly:
		return "client_only"
	}
	return "unknown"
}

// RequiresSession reports whether pages under this class need an authenticated user.
func (c Class) RequiresSession() bool {
	switch c {
	case ClassBypass, ClassPublic:
		return false
	}
	return true
}

// Classify maps a request path to its access class. Exact public matches are
// checked before the prefix sets, so a public path is never shadowed by a
// broader prefix rule.
func Classify(path string) Class {
	if isBypass(path) {
		return ClassBypass
	}
	for _, p := range PublicPaths {
		if path == p {
			return ClassPublic
		}
	}
	if matchesAny(path, NotaryPrefixes) {
		return ClassNotaryOnly
	}
	if matchesAny(path, ClientPrefixes) {
		return ClassClientOnly
	}
	return ClassUnknown
}

func isBypass(path string) bool {
	if matchesAny(path, internalPrefixes) {
		return true
	}
	// Anything with a file extension is an asset, not a page.
	return strings.Contains(path, ".")
}

// CanAccess is the client-layer guard: it re-checks a navigation against the
// same table after the session store has validated the user with the backend.
func CanAccess(path, level string) bool {
	switch Classify(path) {
	case ClassBypass, ClassPublic:
		return true
	case ClassNotaryOnly:
		return roles.IsNotaryLevel(level)
	case ClassClientOnly:
		return roles.IsClient(level)
	}
	return false
}
