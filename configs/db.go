package configs

import (
	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	Migrate(db)
}

// Migrate runs the schema migration on the given connection (tests pass their
// own in-memory DB).
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&entity.User{},
		&entity.Canteen{}, &entity.MenuItem{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.PaymentMethod{}, &entity.PaymentStatus{}, &entity.Payment{},
		&entity.Exam{},
		&entity.Feedback{},
	)
}
