// Package authz models per-request authorization capabilities. A Scope is
// built once from the authenticated identity and passed down to services,
// replacing inline role string comparisons in handlers.
package authz

import "github.com/google/uuid"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller as extracted from the JWT claims.
// Name and Email are carried so entity snapshots (organizer fields, attendee
// contact fields) never trust caller-supplied values.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// Scope answers what the caller may touch.
type Scope interface {
	// UserID is the acting user.
	UserID() uuid.UUID
	// CanManage reports whether the caller may write a resource owned by ownerID.
	CanManage(ownerID uuid.UUID) bool
	// Unrestricted reports whether listings should skip ownership filtering.
	Unrestricted() bool
}

// ScopeFor evaluates the identity's capabilities.
func ScopeFor(ident Identity) Scope {
	if ident.Role == RoleAdmin {
		return adminScope{userID: ident.ID}
	}
	return ownerScope{userID: ident.ID}
}

type ownerScope struct {
	userID uuid.UUID
}

func (s ownerScope) UserID() uuid.UUID { return s.userID }
func (s ownerScope) CanManage(owner uuid.UUID) bool { return owner == s.userID }
func (s ownerScope) Unrestricted() bool { return false }

type adminScope struct {
	userID uuid.UUID
}

func (s adminScope) UserID() uuid.UUID { return s.userID }
func (s adminScope) CanManage(owner uuid.UUID) bool { return true }
func (s adminScope) Unrestricted() bool { return true }
