package domain

import (
	restaurants "lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/validation"
)

const (
	MsgDuplicateMenuUniqueSet = "The fields restaurant_id, date must make a unique set."
	MsgDuplicateMenu          = "You can only add one menu per day."
	MsgNotRestaurantOwner     = "You can only add a menu to your own restaurant."
	MsgNoMenusToday           = "No menus for today."
	MsgNoVotesToday           = "No votes today."
)

// Menu is a restaurant's offer for one day. (RestaurantID, Date) is unique.
type Menu struct {
	ID           uint                   `gorm:"primaryKey"`
	RestaurantID uint                   `gorm:"not null;uniqueIndex:idx_menus_restaurant_date,priority:1"`
	Restaurant   restaurants.Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	// Content is the compact JSON text of the menu document.
	Content string       `gorm:"type:text;not null"`
	Date    calendar.Day `gorm:"not null;uniqueIndex:idx_menus_restaurant_date,priority:2;index"`
}

// DuplicateMenuError is returned when the restaurant already has a menu for the day.
func DuplicateMenuError() validation.Errors {
	return validation.NonField(MsgDuplicateMenuUniqueSet).WithDetail(MsgDuplicateMenu)
}
