package permission

import (
	"fmt"

	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/logger"
)

// Resources guarded by route groups.
const (
	ResourceAccount  = "account"
	ResourceAgent    = "agent"
	ResourceBuyer    = "buyer"
	ResourceAdmin    = "admin"
	ResourcePayments = "payments"

	ActionRead  = "read"
	ActionWrite = "write"
)

type Policy struct {
	Role     authorization.Role
	Resource string
	Action   string
}

// DefaultPolicies is the seeded role to (resource, action) table.
func DefaultPolicies() []Policy {
	var policies []Policy
	grant := func(role authorization.Role, resource string, actions ...string) {
		for _, a := range actions {
			policies = append(policies, Policy{Role: role, Resource: resource, Action: a})
		}
	}

	for _, role := range authorization.AllRoles {
		grant(role, ResourceAccount, ActionRead, ActionWrite)
	}
	grant(authorization.RoleAgent, ResourceAgent, ActionRead, ActionWrite)
	grant(authorization.RoleAgent, ResourcePayments, ActionRead, ActionWrite)
	grant(authorization.RoleBuyer, ResourceBuyer, ActionRead, ActionWrite)
	grant(authorization.RoleAdmin, ResourceAdmin, ActionRead, ActionWrite)

	return policies
}

// SeedDefaultPolicies adds any missing default policy. Existing rows are kept.
func SeedDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, p := range DefaultPolicies() {
		if err := e.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			return fmt.Errorf("failed to seed policy [%s, %s, %s]: %w", p.Role, p.Resource, p.Action, err)
		}
	}

	log.Infow("permission policies seeded", "count", len(DefaultPolicies()))
	return nil
}
