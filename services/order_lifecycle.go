package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/repository"
	"gorm.io/gorm"
)

// Order status names as seeded in order_statuses.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusDelivered = "Delivered"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Payment lookup names as seeded.
const (
	MethodCash   = "Cash"
	MethodOnline = "Online"

	PayPending   = "Pending"
	PayCompleted = "Completed"
	PayFailed    = "Failed"
	PayRefunded  = "Refunded"
)

type StatusIDs struct {
	Pending   uint
	Preparing uint
	Ready     uint
	Delivered uint
	Completed uint
	Cancelled uint
}

// Actor is the capability-scoped identity behind a transition request. It is
// built from JWT claims by the controller and passed in explicitly; the
// service never reads ambient session state.
type Actor struct {
	UserID    uint
	Role      string // staff | admin
	CanteenID uint   // staff only
}

type OrderStatusEvent struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Priority    bool   `json:"priority"`
}

// OrderNotifier pushes status changes to live canteen boards. Implemented by
// the websocket hub; nil disables push.
type OrderNotifier interface {
	NotifyStatus(canteenID uint, ev OrderStatusEvent)
}

// LifecycleService is the single entry point for order status changes. All
// guard logic lives here; staff and admin controllers are pure callers.
type LifecycleService struct {
	DB         *gorm.DB
	Repo       *repository.OrderRepository
	Payments   *repository.PaymentRepository
	Reconciler *RefundReconciler

	Status    StatusIDs
	PayStatus PaymentStatusIDs
	PayMethod PaymentMethodIDs

	notifier OrderNotifier

	// status graph: current -> allowed successors
	graph    map[uint][]uint
	byName   map[string]uint
	nameByID map[uint]string
}

func NewLifecycleService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	payments *repository.PaymentRepository,
	reconciler *RefundReconciler,
) *LifecycleService {
	s := &LifecycleService{DB: db, Repo: repo, Payments: payments, Reconciler: reconciler}

	s.byName = make(map[string]uint, 6)
	s.nameByID = make(map[uint]string, 6)
	load := func(name string, dst *uint) {
		if id, err := repo.GetStatusIDByName(name); err == nil {
			*dst = id
			s.byName[name] = id
			s.nameByID[id] = name
		}
	}
	load(StatusPending, &s.Status.Pending)
	load(StatusPreparing, &s.Status.Preparing)
	load(StatusReady, &s.Status.Ready)
	load(StatusDelivered, &s.Status.Delivered)
	load(StatusCompleted, &s.Status.Completed)
	load(StatusCancelled, &s.Status.Cancelled)

	s.PayStatus = LoadPaymentStatusIDs(payments)
	s.PayMethod = LoadPaymentMethodIDs(payments)

	s.graph = map[uint][]uint{
		s.Status.Pending:   {s.Status.Preparing, s.Status.Cancelled},
		s.Status.Preparing: {s.Status.Ready, s.Status.Cancelled},
		s.Status.Ready:     {s.Status.Delivered},
		s.Status.Delivered: {s.Status.Completed},
		s.Status.Completed: {}, // terminal
		s.Status.Cancelled: {}, // terminal
	}
	return s
}

// SetNotifier attaches the live board hub. Optional.
func (s *LifecycleService) SetNotifier(n OrderNotifier) { s.notifier = n }

// StatusName resolves a seeded status ID back to its name.
func (s *LifecycleService) StatusName(id uint) string { return s.nameByID[id] }

// Transition moves an order to target (a status name). Guards run in order:
// actor scope, structural edge, payment window. A cancellation of an online
// captured payment refunds through the reconciler before the status write is
// attempted; if the refund fails the order keeps its prior status.
//
// Re-requesting the order's current status is a success no-op, so client
// retries are harmless. The status write itself is conditional on the status
// read at the start of the call; a losing writer gets
// ErrConcurrentModification and must re-read before retrying.
func (s *LifecycleService) Transition(ctx context.Context, actor Actor, orderID uint, target string) (*entity.Order, *RefundOutcome, error) {
	targetID, ok := s.byName[target]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, nil, err
	}

	// 1) actor scope
	switch actor.Role {
	case "admin":
		// unscoped
	case "staff":
		if actor.CanteenID != o.CanteenID {
			return nil, nil, ErrForbidden
		}
	default:
		return nil, nil, ErrForbidden
	}

	// retried request for the state we are already in
	if o.OrderStatusID == targetID {
		return o, nil, nil
	}

	// 2) structural edge
	if !s.hasEdge(o.OrderStatusID, targetID) {
		return nil, nil, fmt.Errorf("%w: %s -> %s",
			ErrInvalidTransition, s.nameByID[o.OrderStatusID], target)
	}

	// 3) payment window + refund, strictly before the status write
	var outcome *RefundOutcome
	if targetID == s.Status.Cancelled {
		outcome, err = s.settleCancellation(ctx, o)
		if err != nil {
			return nil, nil, err
		}
	}

	wrote, err := s.Repo.UpdateStatusFromTo(s.DB, o.ID, o.OrderStatusID, targetID)
	if err != nil {
		return nil, nil, err
	}
	if !wrote {
		return nil, nil, ErrConcurrentModification
	}

	updated, err := s.Repo.GetOrder(o.ID)
	if err != nil {
		return nil, nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyStatus(updated.CanteenID, OrderStatusEvent{
			OrderID:     updated.ID,
			OrderNumber: updated.OrderNumber,
			Status:      s.nameByID[updated.OrderStatusID],
			Priority:    updated.Priority,
		})
	}
	return updated, outcome, nil
}

func (s *LifecycleService) hasEdge(from, to uint) bool {
	for _, id := range s.graph[from] {
		if id == to {
			return true
		}
	}
	return false
}

// settleCancellation decides whether the cancellation needs a refund and, if
// so, drives it. Cash orders and orders with no payment record pass straight
// through without touching the ledger.
func (s *LifecycleService) settleCancellation(ctx context.Context, o *entity.Order) (*RefundOutcome, error) {
	p, err := s.Payments.GetByOrderID(o.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if p.PaymentMethodID != s.PayMethod.Online {
		return nil, nil
	}

	switch p.PaymentStatusID {
	case s.PayStatus.Completed:
		// money is at risk: refundable only before preparation starts
		if o.OrderStatusID == s.Status.Preparing {
			return nil, ErrCancellationWindowClosed
		}
		outcome, err := s.Reconciler.Reconcile(ctx, o.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRefundFailed, err)
		}
		return outcome, nil
	case s.PayStatus.Refunded:
		// an earlier cancellation refunded but lost the status race;
		// finishing the cancel is the recovery path, no second refund
		return &RefundOutcome{
			PaymentID:       p.ID,
			Amount:          p.Amount,
			RefundRef:       p.RefundRef,
			AlreadyRefunded: true,
		}, nil
	default:
		// online but never captured, nothing to give back
		return nil, nil
	}
}
