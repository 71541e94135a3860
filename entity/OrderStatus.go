package entity

import (
	"gorm.io/gorm"
)

// Lookup table. Seeded: Pending, Preparing, Ready, Delivered, Completed, Cancelled.
type OrderStatus struct {
	gorm.Model
	StatusName string `gorm:"size:100;uniqueIndex;not null" json:"statusName"`

	Orders []Order `json:"-"`
}
