// Package guard decides whether a protected view may render for the
// current session. It is a pure function of session state, re-run on
// every navigation; no decision is ever cached.
package guard

import "net/url"

// Outcome says what the navigation layer should do.
type Outcome int

const (
	// Allow renders the requested view.
	Allow Outcome = iota
	// Loading renders a placeholder while the session hydrates.
	Loading
	// Redirect navigates to Decision.Target instead.
	Redirect
)

// Session is the slice of session state the guard reads.
type Session struct {
	IsAuthenticated bool
	IsAdmin         bool
	IsLoading       bool
}

type Decision struct {
	Outcome Outcome
	// Target is the redirect destination, when Outcome is Redirect.
	Target string
}

// Decide gates access to path. Unauthenticated users are sent to the
// login view carrying the path they wanted, so login can return them
// there. Authenticated non-admins asking for an admin view go home.
func Decide(session Session, requireAdmin bool, path string) Decision {
	if session.IsLoading {
		return Decision{Outcome: Loading}
	}
	if !session.IsAuthenticated {
		return Decision{Outcome: Redirect, Target: "/login?from=" + url.QueryEscape(path)}
	}
	if requireAdmin && !session.IsAdmin {
		return Decision{Outcome: Redirect, Target: "/"}
	}
	return Decision{Outcome: Allow}
}
