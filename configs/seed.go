package configs

import (
	"log"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// first-run admin account
func SeedAdmin(conn *gorm.DB, email, pass string) error {
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	conn.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return conn.Create(&admin).Error
}

// Seed initial lookup/status rows.
func SeedLookups(conn *gorm.DB) error {
	// Order
	conn.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Pending"})
	conn.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Preparing"})
	conn.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Ready"})
	conn.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Delivered"})
	conn.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Completed"})
	conn.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Cancelled"})

	// Payment
	conn.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: "Cash"})
	conn.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: "Online"})
	conn.FirstOrCreate(&entity.PaymentStatus{}, entity.PaymentStatus{StatusName: "Pending"})
	conn.FirstOrCreate(&entity.PaymentStatus{}, entity.PaymentStatus{StatusName: "Completed"})
	conn.FirstOrCreate(&entity.PaymentStatus{}, entity.PaymentStatus{StatusName: "Failed"})
	conn.FirstOrCreate(&entity.PaymentStatus{}, entity.PaymentStatus{StatusName: "Refunded"})

	return nil
}
