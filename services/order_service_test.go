package services

import (
	"testing"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) orderService(fee int64) *OrderService {
	return NewOrderService(f.db, f.orders, f.payments, NewPriorityService(f.exams, fee))
}

func (f *fixture) createMenuItem(t *testing.T, canteenID uint, name string, price int64) entity.MenuItem {
	t.Helper()
	m := entity.MenuItem{Name: name, Price: price, IsAvailable: true, CanteenID: canteenID}
	require.NoError(t, f.db.Create(&m).Error)
	return m
}

func TestCreateOrderCapturesPrices(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService(1000)

	dosa := f.createMenuItem(t, f.canteenA.ID, "Masala Dosa", 4500)
	tea := f.createMenuItem(t, f.canteenA.ID, "Tea", 1000)

	out, err := svc.Create(f.customer.ID, f.customer.UniversityID, &CreateOrderReq{
		CanteenID: f.canteenA.ID,
		Items: []OrderItemIn{
			{MenuItemID: dosa.ID, Qty: 2},
			{MenuItemID: tea.ID, Qty: 1},
		},
		PaymentMethod: MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), out.Total)
	assert.False(t, out.Priority)
	assert.NotEmpty(t, out.OrderNumber)

	// captured unit price survives a later menu price change
	require.NoError(t, f.db.Model(&entity.MenuItem{}).Where("id = ?", dosa.ID).Update("price", 9999).Error)

	items, err := f.orders.GetOrderItems(out.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		if it.MenuItemID == dosa.ID {
			assert.Equal(t, int64(4500), it.UnitPrice)
			assert.Equal(t, int64(9000), it.Total)
		}
	}

	// a pending cash payment record accompanies the order
	p, err := f.payments.GetByOrderID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, svc.PayMethod.Cash, p.PaymentMethodID)
	assert.Equal(t, svc.PayStatus.Pending, p.PaymentStatusID)
	assert.Equal(t, out.Total, p.Amount)
}

func TestCreateOrderAppliesPriorityFee(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService(1000)

	require.NoError(t, f.db.Create(&entity.Exam{
		ExamName:          "MCA Finals",
		StartUniversityID: "01FE23MCA001",
		EndUniversityID:   "01FE23MCA060",
		IsActive:          true,
	}).Error)

	dosa := f.createMenuItem(t, f.canteenA.ID, "Masala Dosa", 4500)

	out, err := svc.Create(f.customer.ID, f.customer.UniversityID, &CreateOrderReq{
		CanteenID:      f.canteenA.ID,
		Items:          []OrderItemIn{{MenuItemID: dosa.ID, Qty: 1}},
		PaymentMethod:  MethodOnline,
		PriorityReason: "exam",
	})
	require.NoError(t, err)
	assert.True(t, out.Priority)
	assert.Equal(t, int64(1000), out.PriorityFee)
	assert.Equal(t, int64(5500), out.Total)

	o, err := f.orders.GetOrder(out.ID)
	require.NoError(t, err)
	assert.Equal(t, ReasonExam, o.PriorityReason)

	// classification is frozen: deactivating the window later changes nothing
	require.NoError(t, f.db.Model(&entity.Exam{}).Where("1 = 1").Update("is_active", false).Error)
	o2, err := f.orders.GetOrder(out.ID)
	require.NoError(t, err)
	assert.True(t, o2.Priority)
	assert.Equal(t, int64(1000), o2.PriorityFee)
}

func TestCreateOrderRejectsForeignMenuItems(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService(1000)

	foreign := f.createMenuItem(t, f.canteenB.ID, "Hostel Special", 3000)

	_, err := svc.Create(f.customer.ID, f.customer.UniversityID, &CreateOrderReq{
		CanteenID:     f.canteenA.ID,
		Items:         []OrderItemIn{{MenuItemID: foreign.ID, Qty: 1}},
		PaymentMethod: MethodCash,
	})
	require.EqualError(t, err, "menu item not in this canteen")

	unavailable := f.createMenuItem(t, f.canteenA.ID, "Off Menu", 3000)
	require.NoError(t, f.db.Model(&entity.MenuItem{}).Where("id = ?", unavailable.ID).Update("is_available", false).Error)

	_, err = svc.Create(f.customer.ID, f.customer.UniversityID, &CreateOrderReq{
		CanteenID:     f.canteenA.ID,
		Items:         []OrderItemIn{{MenuItemID: unavailable.ID, Qty: 1}},
		PaymentMethod: MethodCash,
	})
	require.EqualError(t, err, "menu item not available")
}

func TestConfirmPayment(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService(0)

	dosa := f.createMenuItem(t, f.canteenA.ID, "Masala Dosa", 4500)
	out, err := svc.Create(f.customer.ID, f.customer.UniversityID, &CreateOrderReq{
		CanteenID:     f.canteenA.ID,
		Items:         []OrderItemIn{{MenuItemID: dosa.ID, Qty: 1}},
		PaymentMethod: MethodOnline,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmPayment(f.customer.ID, out.ID, "PAY-123"))

	p, err := f.payments.GetByOrderID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, svc.PayStatus.Completed, p.PaymentStatusID)
	assert.Equal(t, "PAY-123", p.GatewayRef)
	assert.NotNil(t, p.PaidAt)

	// captured amounts are settled once
	require.EqualError(t, svc.ConfirmPayment(f.customer.ID, out.ID, "PAY-456"), "payment already settled")

	// cash payments cannot be confirmed online
	cashOut, err := svc.Create(f.customer.ID, f.customer.UniversityID, &CreateOrderReq{
		CanteenID:     f.canteenA.ID,
		Items:         []OrderItemIn{{MenuItemID: dosa.ID, Qty: 1}},
		PaymentMethod: MethodCash,
	})
	require.NoError(t, err)
	require.EqualError(t, svc.ConfirmPayment(f.customer.ID, cashOut.ID, "PAY-789"), "not an online payment")
}

func TestListForCanteenOrdersPriorityFirst(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService(1000)

	normal := f.createOrder(t, f.canteenA.ID, StatusPending, 4000)

	prio := f.createOrder(t, f.canteenA.ID, StatusPending, 5000)
	require.NoError(t, f.db.Model(&entity.Order{}).Where("id = ?", prio.ID).
		Updates(map[string]any{"priority": true, "priority_reason": ReasonExam}).Error)

	// other canteen's order must not leak in
	f.createOrder(t, f.canteenB.ID, StatusPending, 9000)

	out, err := svc.ListForCanteen(f.canteenA.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(2), out.Total)
	assert.Equal(t, prio.ID, out.Items[0].ID, "priority orders first")
	assert.Equal(t, normal.ID, out.Items[1].ID)
}
