package entity

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	Amount     int64      `json:"amount"` // captured amount, immutable once Completed
	GatewayRef string     `gorm:"size:64" json:"gatewayRef"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`

	RefundRef  string     `gorm:"size:64" json:"refundRef"`
	RefundedAt *time.Time `json:"refundedAt,omitempty"`

	OrderID uint  `gorm:"uniqueIndex;not null" json:"orderId"` // one payment per order
	Order   Order `json:"-"`

	PaymentMethodID uint          `json:"paymentMethodId"`
	PaymentMethod   PaymentMethod `json:"-"`

	PaymentStatusID uint          `json:"paymentStatusId"`
	PaymentStatus   PaymentStatus `json:"-"`
}
