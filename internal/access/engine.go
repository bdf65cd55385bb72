package access

import (
	"atas-gateway/internal/roles"
	"atas-gateway/internal/routes"
	"atas-gateway/internal/token"
)

// Action is what the edge layer does with a navigation.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirect
)

// Decision is the outcome of the edge evaluation for one navigation.
type Decision struct {
	Action   Action
	Location string // redirect target when Action == ActionRedirect

	// ClearSessionCookie marks the auth cookie as corrupted; the transport
	// layer must expire it alongside the redirect.
	ClearSessionCookie bool
}

func allow() Decision {
	return Decision{Action: ActionAllow}
}

func redirect(to string) Decision {
	return Decision{Action: ActionRedirect, Location: to}
}

// Decide evaluates the access table for one navigation. It is a pure function of
// (path, rawToken): no I/O, no hidden state, identical inputs yield identical
// decisions. The decoded access level is a routing hint only; see internal/token
// for the trust boundary.
func Decide(path, rawToken string) Decision {
	class := routes.Classify(path)
	if class == routes.ClassBypass {
		return allow()
	}

	hasToken := rawToken != ""
	claims, decodable := token.Decode(rawToken)

	// The root page is never rendered; it forwards to the session's home page
	// or to login. An unreadable token still lands on the dashboard here: the
	// client-layer guard signs it out on the next profile fetch.
	if path == "/" {
		if !hasToken {
			return redirect(routes.LoginPath)
		}
		return redirect(routes.Home(claims.AccessLevel))
	}

	if class == routes.ClassPublic {
		// An authenticated browser has no business on login/signup pages.
		if decodable {
			return redirect(routes.Home(claims.AccessLevel))
		}
		return allow()
	}

	// Everything past this point requires a session.
	if !hasToken {
		return redirect(routes.LoginPath)
	}
	if !decodable {
		// Present but unreadable: treat the session as corrupted and drop the
		// cookie on the way out.
		return Decision{Action: ActionRedirect, Location: routes.LoginPath, ClearSessionCookie: true}
	}

	switch class {
	case routes.ClassClientOnly:
		if !roles.IsClient(claims.AccessLevel) {
			return redirect(routes.NotaryHome)
		}
	case routes.ClassNotaryOnly:
		if !roles.IsNotaryLevel(claims.AccessLevel) {
			return redirect(routes.ClientHome)
		}
	case routes.ClassUnknown:
		// No rule matched: fail closed, back to the session's home page.
		return redirect(routes.Home(claims.AccessLevel))
	}
	return allow()
}
