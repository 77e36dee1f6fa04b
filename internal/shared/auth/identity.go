package auth

import "slices"

// Role names as stored in user_roles.
const (
	RoleEmployee        = "Employee"
	RoleRestaurantOwner = "RestaurantOwner"
)

// Identity is the authenticated requester attached to every protected request.
type Identity struct {
	UserID   uint
	Username string
	Roles    []string
}

func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != 0
}
