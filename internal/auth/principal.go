package auth

import "strings"

// UnknownUser is the placeholder identity for unauthenticated requests.
const UnknownUser = "Unknown"

// Principal is the identity a workflow operation acts for.
type Principal struct {
	// Username is the raw network identity, e.g. CORP\alice. Entries are owned by it.
	Username string
	// DisplayName is the part after the domain separator.
	DisplayName   string
	Authenticated bool
}

// ParsePrincipal builds a principal from a DOMAIN\username identity. The
// value is split once on the first backslash. An empty identity yields the
// Unknown placeholder.
func ParsePrincipal(identity string) Principal {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return Principal{Username: UnknownUser, DisplayName: UnknownUser}
	}

	display := identity
	if _, after, found := strings.Cut(identity, `\`); found {
		display = after
	}
	return Principal{Username: identity, DisplayName: display, Authenticated: true}
}
