package entity

import (
	"gorm.io/gorm"
)

// Lookup table. Seeded: Pending, Completed, Failed, Refunded.
type PaymentStatus struct {
	gorm.Model
	StatusName string `gorm:"size:100;uniqueIndex;not null" json:"statusName"`

	Payments []Payment `json:"-"`
}
