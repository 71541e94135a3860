package entity

import (
	"gorm.io/gorm"
)

// Lookup table. Seeded: Cash, Online.
type PaymentMethod struct {
	gorm.Model
	MethodName string `gorm:"size:100;uniqueIndex;not null" json:"methodName"`

	Payments []Payment `json:"-"`
}
