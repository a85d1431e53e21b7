// Package authorization models the typed role claim set carried by access tokens.
package authorization

import (
	"fmt"
	"sort"
	"strings"
)

type Role string

const (
	RoleBuyer Role = "BUYER"
	RoleAgent Role = "AGENT"
	RoleAdmin Role = "ADMIN"
)

// AllRoles lists every role in a fixed order.
var AllRoles = []Role{RoleBuyer, RoleAgent, RoleAdmin}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether a user may attach the role to themselves at login or signup.
func (r Role) SelfAssignable() bool {
	return r == RoleBuyer || r == RoleAgent
}

// ParseRole accepts role names case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// RoleSet is an unordered set of roles.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// ParseRoleSet builds a set from claim strings, skipping unknown values.
func ParseRoleSet(values []string) RoleSet {
	s := make(RoleSet, len(values))
	for _, v := range values {
		if r, err := ParseRole(v); err == nil {
			s[r] = struct{}{}
		}
	}
	return s
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Add returns true when r was not already present.
func (s RoleSet) Add(r Role) bool {
	if s.Has(r) {
		return false
	}
	s[r] = struct{}{}
	return true
}

// Intersects reports whether the two sets share at least one role.
func (s RoleSet) Intersects(other RoleSet) bool {
	for r := range s {
		if other.Has(r) {
			return true
		}
	}
	return false
}

// Slice returns the roles sorted by name.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s RoleSet) Strings() []string {
	roles := s.Slice()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func (s RoleSet) String() string {
	return "[" + strings.Join(s.Strings(), " ") + "]"
}

// AccessDeniedMessage names the allowed roles and the roles actually presented.
func AccessDeniedMessage(allowed, presented RoleSet) string {
	return fmt.Sprintf("access denied: requires one of %s, presented %s", allowed, presented)
}
