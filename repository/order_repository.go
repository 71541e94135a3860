package repository

import (
	"time"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID            uint      `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	CanteenID     uint      `json:"canteenId"`
	Total         int64     `json:"total"`
	Priority      bool      `json:"priority"`
	OrderStatusID uint      `json:"orderStatusId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, order_number, canteen_id, total, priority, order_status_id, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

type CanteenOrderSummary struct {
	ID            uint      `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	UserID        uint      `json:"userId"`
	CustomerName  string    `json:"customerName"`
	Total         int64     `json:"total"`
	Priority      bool      `json:"priority"`
	OrderStatusID uint      `json:"orderStatusId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Canteen boards list priority orders first, then FIFO.
func (r *OrderRepository) ListOrdersForCanteen(canteenID uint, statusID *uint, page, limit int) ([]CanteenOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Model(&entity.Order{}).Where("canteen_id = ?", canteenID)
	if statusID != nil && *statusID != 0 {
		dbCount = dbCount.Where("order_status_id = ?", *statusID)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID            uint
		OrderNumber   string
		UserID        uint
		Total         int64
		Priority      bool
		OrderStatusID uint
		CreatedAt     time.Time
		FirstName     string
		LastName      string
	}
	db := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.user_id, o.total, o.priority, o.order_status_id, o.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.canteen_id = ?", canteenID)
	if statusID != nil && *statusID != 0 {
		db = db.Where("o.order_status_id = ?", *statusID)
	}
	if err := db.Order("o.priority DESC, o.id ASC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]CanteenOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, CanteenOrderSummary{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			UserID:        row.UserID,
			CustomerName:  row.FirstName + " " + row.LastName,
			Total:         row.Total,
			Priority:      row.Priority,
			OrderStatusID: row.OrderStatusID,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, total, nil
}

// UpdateStatusFromTo is the conditional status write: it succeeds only if the
// stored status still equals fromID. A false return with no error means a
// concurrent writer got there first (or the caller read stale state).
func (r *OrderRepository) UpdateStatusFromTo(tx *gorm.DB, orderID, fromID, toID uint) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromID).
		Update("order_status_id", toID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, qty, unit_price, total, menu_item_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// ---------------- Validations / Helpers ----------------

func (r *OrderRepository) CanteenExists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Canteen{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// id, price, canteen_id only
func (r *OrderRepository) GetMenuItemBasics(id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, price, canteen_id, is_available").First(&m, id).Error
	return m, err
}

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.OrderStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}
