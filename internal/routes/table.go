package routes

import (
	"strings"

	"atas-gateway/internal/roles"
)

// This table is the single source of truth for both enforcement layers: the edge
// middleware (internal/access) and the post-session guard (internal/webproxy)
// consume the same data, so the two cannot drift apart.

// Navigation targets used by the decision table.
const (
	LoginPath  = "/login"
	ClientHome = "/empresa"
	NotaryHome = "/dashboard"
)

// PublicPaths are matched exactly and never require a session.
var PublicPaths = []string{"/", "/login", "/cadastro"}

// NotaryPrefixes gate the notary-side pages (NOTARY and ADMIN sessions).
var NotaryPrefixes = []string{"/dashboard", "/ata", "/perfil"}

// ClientPrefixes gate the company-side pages (CLIENT sessions).
var ClientPrefixes = []string{"/empresa", "/minhas-atas", "/perfil-empresa"}

// internalPrefixes are served by the gateway itself and bypass access logic,
// together with any path carrying a file extension.
var internalPrefixes = []string{"/api", "/session", "/static", "/healthz"}

// Home returns the landing page for a decoded access level. Everything that is
// not a CLIENT session lands on the notary dashboard.
func Home(level string) string {
	if roles.IsClient(level) {
		return ClientHome
	}
	return NotaryHome
}

// hasPrefix matches whole path segments: "/perfil" covers "/perfil" and
// "/perfil/123" but never "/perfil-empresa".
func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPrefix(path, p) {
			return true
		}
	}
	return false
}
