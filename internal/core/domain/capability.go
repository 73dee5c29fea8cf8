package domain

import "fmt"

// Role represents user role in the system
type Role string

const (
	RoleUser    Role = "user"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// Capability is a named permission granted to a role
type Capability string

const (
	CapManageOwnComplaints Capability = "manage_own_complaints"
	CapManageComplaints    Capability = "manage_complaints"
	CapViewAllComplaints   Capability = "view_all_complaints"
)

var staffCapabilities = map[Capability]bool{
	CapManageComplaints:  true,
	CapViewAllComplaints: true,
}

var roleCapabilities = map[Role]map[Capability]bool{
	RoleUser:    {CapManageOwnComplaints: true},
	RoleOfficer: staffCapabilities,
	RoleAdmin:   staffCapabilities,
}

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleCapabilities[r]; !ok {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

// Can reports whether the role holds the capability
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// IsStaff reports whether the role may work on complaints it does not own
func (r Role) IsStaff() bool {
	return r.Can(CapManageComplaints)
}
