package authz

// User types as stored on leads and employee accounts. The builder account owns
// the organization partition; every other role works leads under one builder.
const (
	RoleBuilder           = "Builder"
	RoleSalesManager      = "Sales Manager"
	RoleTelecaller        = "Telecaller"
	RoleMarketingExecutor = "Marketing Executor"
	RoleReceptionist      = "Receptionist"
	RoleChannelPartner    = "Channel Partner"
)

var assignableRoles = map[string]struct{}{
	RoleSalesManager:      {},
	RoleTelecaller:        {},
	RoleMarketingExecutor: {},
	RoleReceptionist:      {},
	RoleChannelPartner:    {},
}

// IsOwnerRole reports whether the role may act on any lead of its organization.
func IsOwnerRole(userType string) bool {
	return userType == RoleBuilder
}

// IsAssignableRole reports whether a lead may be assigned to users of this role.
func IsAssignableRole(userType string) bool {
	_, ok := assignableRoles[userType]
	return ok
}
