package domain

import (
	"strings"
	"unicode/utf8"

	accounts "lunchVote/internal/modules/accounts/domain"
	"lunchVote/internal/shared/validation"
)

const (
	NameMaxLength = 100

	MsgNameTooLong = "Ensure this field has no more than 100 characters."
)

// Restaurant is owned by the user who created it. Only the owner may publish its menus.
type Restaurant struct {
	ID          uint           `gorm:"primaryKey"`
	OwnerID     uint           `gorm:"not null;index"`
	Owner       *accounts.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name        string         `gorm:"size:100;not null"`
	Description string         `gorm:"type:text"`
}

// Representation is the wire form, also nested inside menu payloads.
type Representation struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r Restaurant) Representation() Representation {
	return Representation{ID: r.ID, Name: r.Name, Description: r.Description}
}

// CreateRestaurantCommand is the client payload for POST /restaurants/.
type CreateRestaurantCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *CreateRestaurantCommand) Validate() validation.Errors {
	errs := validation.Errors{}
	c.Name = strings.TrimSpace(c.Name)
	switch {
	case c.Name == "":
		errs.Add("name", validation.MsgRequired)
	case utf8.RuneCountInString(c.Name) > NameMaxLength:
		errs.Add("name", MsgNameTooLong)
	}
	return errs
}

// ListRestaurantsQuery filters GET /restaurants/. Search matches the name case-insensitively.
type ListRestaurantsQuery struct {
	Search string `query:"search"`
}
