package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SwatiiB/kleCanteen-sub000/repository"
	"gorm.io/gorm"
)

type PaymentStatusIDs struct {
	Pending   uint
	Completed uint
	Failed    uint
	Refunded  uint
}

type PaymentMethodIDs struct {
	Cash   uint
	Online uint
}

func LoadPaymentStatusIDs(repo *repository.PaymentRepository) PaymentStatusIDs {
	var ids PaymentStatusIDs
	if id, err := repo.GetStatusIDByName(PayPending); err == nil {
		ids.Pending = id
	}
	if id, err := repo.GetStatusIDByName(PayCompleted); err == nil {
		ids.Completed = id
	}
	if id, err := repo.GetStatusIDByName(PayFailed); err == nil {
		ids.Failed = id
	}
	if id, err := repo.GetStatusIDByName(PayRefunded); err == nil {
		ids.Refunded = id
	}
	return ids
}

func LoadPaymentMethodIDs(repo *repository.PaymentRepository) PaymentMethodIDs {
	var ids PaymentMethodIDs
	if id, err := repo.GetMethodIDByName(MethodCash); err == nil {
		ids.Cash = id
	}
	if id, err := repo.GetMethodIDByName(MethodOnline); err == nil {
		ids.Online = id
	}
	return ids
}

type RefundOutcome struct {
	PaymentID       uint   `json:"paymentId"`
	Amount          int64  `json:"amount"`
	RefundRef       string `json:"refundRef"`
	AlreadyRefunded bool   `json:"alreadyRefunded"`
}

// RefundReconciler issues the full-amount refund for a cancelled online-paid
// order and marks the ledger. Refunds are single-shot and always for the whole
// captured amount; partials and splits are not supported.
type RefundReconciler struct {
	DB       *gorm.DB
	Payments *repository.PaymentRepository
	Gateway  PaymentGateway

	PayStatus PaymentStatusIDs
	PayMethod PaymentMethodIDs
}

func NewRefundReconciler(db *gorm.DB, payments *repository.PaymentRepository, gateway PaymentGateway) *RefundReconciler {
	return &RefundReconciler{
		DB:        db,
		Payments:  payments,
		Gateway:   gateway,
		PayStatus: LoadPaymentStatusIDs(payments),
		PayMethod: LoadPaymentMethodIDs(payments),
	}
}

// Reconcile refunds the order's payment. Idempotent: a payment already marked
// Refunded is a success with no gateway call, so retried cancellations never
// refund twice. On gateway failure nothing is written and the caller must not
// commit the cancellation.
func (r *RefundReconciler) Reconcile(ctx context.Context, orderID uint) (*RefundOutcome, error) {
	p, err := r.Payments.GetByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("load payment for order %d: %w", orderID, err)
	}

	if p.PaymentStatusID == r.PayStatus.Refunded {
		return &RefundOutcome{
			PaymentID:       p.ID,
			Amount:          p.Amount,
			RefundRef:       p.RefundRef,
			AlreadyRefunded: true,
		}, nil
	}
	if p.PaymentMethodID != r.PayMethod.Online || p.PaymentStatusID != r.PayStatus.Completed {
		return nil, ErrPaymentNotRefundable
	}

	receipt, err := r.Gateway.Refund(ctx, p.GatewayRef, p.Amount)
	if err != nil {
		return nil, fmt.Errorf("gateway refund: %w", err)
	}

	wrote, err := r.Payments.MarkRefunded(r.DB, p.ID, r.PayStatus.Completed, r.PayStatus.Refunded, receipt.RefundRef, time.Now())
	if err != nil {
		return nil, err
	}
	if !wrote {
		// a concurrent reconcile landed between our read and write
		p2, err := r.Payments.GetByOrderID(orderID)
		if err != nil {
			return nil, err
		}
		if p2.PaymentStatusID == r.PayStatus.Refunded {
			return &RefundOutcome{
				PaymentID:       p2.ID,
				Amount:          p2.Amount,
				RefundRef:       p2.RefundRef,
				AlreadyRefunded: true,
			}, nil
		}
		return nil, fmt.Errorf("payment %d changed state during refund", p.ID)
	}

	return &RefundOutcome{PaymentID: p.ID, Amount: p.Amount, RefundRef: receipt.RefundRef}, nil
}
