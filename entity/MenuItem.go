package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // paise
	Category    string `json:"category"`              // Breakfast | Lunch | Snacks | Beverages
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	CanteenID uint    `gorm:"index;not null" json:"canteenId"`
	Canteen   Canteen `json:"-"` // preload only when the canteen name is needed

	OrderItems []OrderItem `json:"-"`
}
