package entity

import (
	"gorm.io/gorm"
)

type Feedback struct {
	gorm.Model
	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `json:"comment"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	CanteenID uint    `gorm:"index;not null" json:"canteenId"`
	Canteen   Canteen `json:"-"`

	// optional link to the order being reviewed
	OrderID *uint  `json:"orderId,omitempty"`
	Order   *Order `json:"-"`
}
