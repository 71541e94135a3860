package entity

import (
	"gorm.io/gorm"
)

type Canteen struct {
	gorm.Model
	Name          string `gorm:"size:100;not null" json:"name"`
	Location      string `json:"location"`
	ContactNumber string `json:"contactNumber"`
	OpeningTime   string `json:"openingTime"` // "08:00"
	ClosingTime   string `json:"closingTime"`
	IsAvailable   bool   `gorm:"default:true" json:"isAvailable"`

	// preload only when needed
	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
	Staff     []User     `gorm:"foreignKey:CanteenID" json:"-"`
	Feedbacks []Feedback `json:"-"`
}
