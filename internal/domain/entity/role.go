// Package entity contains the core business objects of the project.
package entity

// Role is the closed set of profile types. Capabilities attached to each role
// live in the policy package, not on the User.
type Role string

const (
	// RoleCustomer buys offers and writes reviews.
	RoleCustomer Role = "customer"
	// RoleBusiness publishes offers and fulfils orders.
	RoleBusiness Role = "business"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleBusiness:
		return true
	default:
		return false
	}
}
