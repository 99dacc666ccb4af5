package domain

import (
	"slices"
	"time"
)

// Identity is the authenticated caller extracted from a validated token.
type Identity struct {
	UserID    int64
	Username  string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// Policy lists the roles permitted on a protected operation.
// An empty policy admits any authenticated caller.
type Policy struct {
	Roles []Role
}

var (
	PolicyAuthenticated = Policy{}
	PolicyAdmin         = Policy{Roles: []Role{RoleAdmin}}
	PolicyUser          = Policy{Roles: []Role{RoleUser, RoleAdmin}}
)

// Allows reports whether role satisfies the policy. Matching is exact.
func (p Policy) Allows(role Role) bool {
	if len(p.Roles) == 0 {
		return true
	}
	return slices.Contains(p.Roles, role)
}
