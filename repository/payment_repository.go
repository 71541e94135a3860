package repository

import (
	"time"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) GetByOrderID(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkCompleted records a successful online capture.
func (r *PaymentRepository) MarkCompleted(tx *gorm.DB, paymentID, completedStatusID uint, gatewayRef string, paidAt time.Time) error {
	return tx.Model(&entity.Payment{}).Where("id = ?", paymentID).Updates(map[string]any{
		"payment_status_id": completedStatusID,
		"gateway_ref":       gatewayRef,
		"paid_at":           paidAt,
	}).Error
}

// MarkRefunded flips Completed -> Refunded. The status condition makes the
// write safe under duplicate reconcile calls: only the first one lands.
func (r *PaymentRepository) MarkRefunded(tx *gorm.DB, paymentID, completedStatusID, refundedStatusID uint, refundRef string, refundedAt time.Time) (bool, error) {
	res := tx.Model(&entity.Payment{}).
		Where("id = ? AND payment_status_id = ?", paymentID, completedStatusID).
		Updates(map[string]any{
			"payment_status_id": refundedStatusID,
			"refund_ref":        refundRef,
			"refunded_at":       refundedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentRepository) GetMethodIDByName(name string) (uint, error) {
	var id uint
	err := r.DB.Model(&entity.PaymentMethod{}).Select("id").Where("method_name = ?", name).Scan(&id).Error
	return id, err
}

func (r *PaymentRepository) GetStatusIDByName(name string) (uint, error) {
	var id uint
	err := r.DB.Model(&entity.PaymentStatus{}).Select("id").Where("status_name = ?", name).Scan(&id).Error
	return id, err
}
