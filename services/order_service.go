package services

import (
	"errors"
	"time"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Payments *repository.PaymentRepository
	Priority *PriorityService

	Status    StatusIDs
	PayStatus PaymentStatusIDs
	PayMethod PaymentMethodIDs
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	payments *repository.PaymentRepository,
	priority *PriorityService,
) *OrderService {
	s := &OrderService{DB: db, Repo: repo, Payments: payments, Priority: priority}

	if id, err := repo.GetStatusIDByName(StatusPending); err == nil {
		s.Status.Pending = id
	}
	s.PayStatus = LoadPaymentStatusIDs(payments)
	s.PayMethod = LoadPaymentMethodIDs(payments)

	return s
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Qty        int  `json:"qty" binding:"required,min=1"`
}

type CreateOrderReq struct {
	CanteenID      uint          `json:"canteenId" binding:"required"`
	Items          []OrderItemIn `json:"items" binding:"required,min=1"`
	PaymentMethod  string        `json:"paymentMethod" binding:"required,oneof=Cash Online"`
	PriorityReason string        `json:"priorityReason" binding:"omitempty,oneof=exam faculty medical"`
}

type CreateOrderRes struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Total       int64  `json:"total"`
	Priority    bool   `json:"priority"`
	PriorityFee int64  `json:"priorityFee"`
}

// ----- Create -----

// Create places an order. Unit prices are captured from the menu here and
// never recomputed; the priority classification is decided once and frozen.
func (s *OrderService) Create(userID uint, universityID string, req *CreateOrderReq) (*CreateOrderRes, error) {
	ok, err := s.Repo.CanteenExists(req.CanteenID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("canteen not found")
	}

	var subtotal int64
	rows := make([]struct {
		menuItemID uint
		qty        int
		unitPrice  int64
	}, 0, len(req.Items))

	for _, it := range req.Items {
		m, err := s.Repo.GetMenuItemBasics(it.MenuItemID)
		if err != nil {
			return nil, errors.New("menu item not found")
		}
		if m.CanteenID != req.CanteenID {
			return nil, errors.New("menu item not in this canteen")
		}
		if !m.IsAvailable {
			return nil, errors.New("menu item not available")
		}
		subtotal += m.Price * int64(it.Qty)
		rows = append(rows, struct {
			menuItemID uint
			qty        int
			unitPrice  int64
		}{m.ID, it.Qty, m.Price})
	}

	cls, err := s.Priority.ClassifyCurrent(universityID, req.PriorityReason)
	if err != nil {
		return nil, err
	}

	total := subtotal + cls.Fee

	methodID := s.PayMethod.Cash
	if req.PaymentMethod == MethodOnline {
		methodID = s.PayMethod.Online
	}

	var out CreateOrderRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			OrderNumber:    uuid.NewString(),
			Subtotal:       subtotal,
			PriorityFee:    cls.Fee,
			Total:          total,
			Priority:       cls.Priority,
			PriorityReason: cls.Reason,
			UserID:         userID,
			CanteenID:      req.CanteenID,
			OrderStatusID:  s.Status.Pending,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, r := range rows {
			oi := entity.OrderItem{
				Qty: r.qty, UnitPrice: r.unitPrice, Total: r.unitPrice * int64(r.qty),
				OrderID: order.ID, MenuItemID: r.menuItemID,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		p := entity.Payment{
			Amount:          total,
			OrderID:         order.ID,
			PaymentMethodID: methodID,
			PaymentStatusID: s.PayStatus.Pending,
		}
		if err := s.Payments.CreatePayment(tx, &p); err != nil {
			return err
		}

		out = CreateOrderRes{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			Total:       order.Total,
			Priority:    order.Priority,
			PriorityFee: order.PriorityFee,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPayment records a successful online capture reported by the payment
// flow. Only a pending online payment can be confirmed.
func (s *OrderService) ConfirmPayment(userID, orderID uint, gatewayRef string) error {
	if _, err := s.Repo.GetOrderForUser(userID, orderID); err != nil {
		return err
	}
	p, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	if p.PaymentMethodID != s.PayMethod.Online {
		return errors.New("not an online payment")
	}
	if p.PaymentStatusID != s.PayStatus.Pending {
		return errors.New("payment already settled")
	}
	return s.Payments.MarkCompleted(s.DB, p.ID, s.PayStatus.Completed, gatewayRef, time.Now())
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	ID             uint               `json:"id"`
	OrderNumber    string             `json:"orderNumber"`
	Subtotal       int64              `json:"subtotal"`
	PriorityFee    int64              `json:"priorityFee"`
	Total          int64              `json:"total"`
	Priority       bool               `json:"priority"`
	PriorityReason string             `json:"priorityReason"`
	OrderStatusID  uint               `json:"orderStatusId"`
	CanteenID      uint               `json:"canteenId"`
	Items          []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.detail(o)
}

func (s *OrderService) Detail(orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	return s.detail(o)
}

func (s *OrderService) detail(o *entity.Order) (*OrderDetail, error) {
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Subtotal:       o.Subtotal,
		PriorityFee:    o.PriorityFee,
		Total:          o.Total,
		Priority:       o.Priority,
		PriorityReason: o.PriorityReason,
		OrderStatusID:  o.OrderStatusID,
		CanteenID:      o.CanteenID,
		Items:          items,
	}, nil
}

type CanteenOrderListOut struct {
	Items []repository.CanteenOrderSummary `json:"items"`
	Total int64                            `json:"total"`
	Page  int                              `json:"page"`
	Limit int                              `json:"limit"`
}

func (s *OrderService) ListForCanteen(canteenID uint, statusID *uint, page, limit int) (*CanteenOrderListOut, error) {
	items, total, err := s.Repo.ListOrdersForCanteen(canteenID, statusID, page, limit)
	if err != nil {
		return nil, err
	}
	return &CanteenOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}
