package domain

// Role is the coarse permission level assigned to a user account.
// Capability-wise admin ⊇ manager ⊇ staff; all three can read.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Roles lists every valid role, ordered by ascending capability.
var Roles = []Role{RoleStaff, RoleManager, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// CapabilitySet is the derived, never-stored answer to "what may this role
// do". Every view consults this one mapping instead of re-deriving role
// checks at each call site.
type CapabilitySet struct {
	CanViewUsers      bool
	CanMutateProducts bool
	CanMutateOrders   bool
	CanManageUsers    bool
}

// CapabilitiesFor maps a role to its capability set. Pure, no I/O.
// Staff are read-only everywhere. Managers and admins may create, edit and
// delete products and orders and may see the user list. Only admins may
// create user accounts or change another user's role.
func CapabilitiesFor(r Role) CapabilitySet {
	switch r {
	case RoleAdmin:
		return CapabilitySet{
			CanViewUsers:      true,
			CanMutateProducts: true,
			CanMutateOrders:   true,
			CanManageUsers:    true,
		}
	case RoleManager:
		return CapabilitySet{
			CanViewUsers:      true,
			CanMutateProducts: true,
			CanMutateOrders:   true,
		}
	default:
		return CapabilitySet{}
	}
}
