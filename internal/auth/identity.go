package auth

// IdentityState distinguishes "not yet resolved" from a resolved answer.
// Consumers must never collapse Unresolved into Anonymous: a session that
// has not finished resolving is not the same as a session with no user.
type IdentityState int

const (
	IdentityUnresolved IdentityState = iota
	IdentityAnonymous
	IdentityIdentified
)

// Identity is the acting user as seen by a runtime session.
type Identity struct {
	State       IdentityState
	ID          string
	DisplayName string
}

func Unresolved() Identity { return Identity{State: IdentityUnresolved} }

func Anonymous() Identity { return Identity{State: IdentityAnonymous} }

func Identified(id, displayName string) Identity {
	return Identity{State: IdentityIdentified, ID: id, DisplayName: displayName}
}

// FromClaims maps validated JWT claims to an Identity.
func FromClaims(c *Claims) Identity {
	if c == nil {
		return Anonymous()
	}
	return Identified(c.UserID, c.Email)
}
