package domain

import (
	"time"

	"lunchVote/internal/shared/auth"
)

// User is an account able to log in. Roles decide which writes it may perform.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Roles        []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time  `json:"-"`
}

// UserRole links a user to one role. A user may hold both roles.
type UserRole struct {
	UserID uint   `gorm:"primaryKey"`
	Role   string `gorm:"primaryKey;size:32"`
}

// RoleNames returns the role names in storage order.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Role)
	}
	return names
}

func (u User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Username: u.Username, Roles: u.RoleNames()}
}

// RoleFor maps the registration flag to the granted role.
func RoleFor(isEmployee bool) string {
	if isEmployee {
		return auth.RoleEmployee
	}
	return auth.RoleRestaurantOwner
}
