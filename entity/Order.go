package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderNumber string `gorm:"size:40;uniqueIndex;not null" json:"orderNumber"`

	Subtotal    int64 `json:"subtotal"`
	PriorityFee int64 `json:"priorityFee"` // zero unless priority
	Total       int64 `json:"total"`       // subtotal + priorityFee, fixed at creation

	Priority       bool   `json:"priority"`
	PriorityReason string `gorm:"size:20;default:none" json:"priorityReason"` // exam | faculty | medical | none

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"` // preload only for order detail

	CanteenID uint    `gorm:"index;not null" json:"canteenId"`
	Canteen   Canteen `json:"-"`

	OrderStatusID uint        `gorm:"index;not null" json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	OrderItems []OrderItem `json:"-"`
	Payment    *Payment    `gorm:"foreignKey:OrderID" json:"-"` // absent for walk-up cash orders
}
