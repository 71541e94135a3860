package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PhoneNumber  string `json:"phoneNumber"`
	UniversityID string `gorm:"index" json:"universityId"`
	Role         string `gorm:"not null;default:customer" json:"role"` // customer | staff | admin

	// staff only: canteen this account works at
	CanteenID *uint    `json:"canteenId,omitempty"`
	Canteen   *Canteen `json:"-"`

	Orders    []Order    `json:"-"`
	Feedbacks []Feedback `json:"-"`
}
