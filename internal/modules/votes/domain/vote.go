package domain

import (
	accounts "lunchVote/internal/modules/accounts/domain"
	menus "lunchVote/internal/modules/menus/domain"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/validation"
)

const (
	MsgDuplicateVoteUniqueSet = "The fields employee, date must make a unique set."
	MsgDuplicateVote          = "You have already voted today."
)

// Vote records an employee's choice for one day. (EmployeeID, Date) is unique, whatever the menu.
type Vote struct {
	ID         uint           `gorm:"primaryKey"`
	EmployeeID uint           `gorm:"not null;uniqueIndex:idx_votes_employee_date,priority:1"`
	Employee   *accounts.User `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	MenuID     uint           `gorm:"not null;index"`
	Menu       menus.Menu     `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	Date       calendar.Day   `gorm:"not null;uniqueIndex:idx_votes_employee_date,priority:2;index"`
}

type representation struct {
	ID       uint         `json:"id"`
	Employee uint         `json:"employee"`
	Menu     any          `json:"menu"`
	Date     calendar.Day `json:"date"`
}

// Encode renders the vote with its menu in the requested payload version.
func Encode(v menus.Version, vote Vote) any {
	return representation{
		ID:       vote.ID,
		Employee: vote.EmployeeID,
		Menu:     menus.Encode(v, vote.Menu),
		Date:     vote.Date,
	}
}

func EncodeList(v menus.Version, votes []Vote) []any {
	out := make([]any, 0, len(votes))
	for _, vote := range votes {
		out = append(out, Encode(v, vote))
	}
	return out
}

// DuplicateVoteError is returned when the employee already voted on the day.
func DuplicateVoteError() validation.Errors {
	return validation.NonField(MsgDuplicateVoteUniqueSet).WithDetail(MsgDuplicateVote)
}
